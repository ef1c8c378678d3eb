package language

import (
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/sirupsen/logrus"
)

// Detector maps message text to a supported ISO 639-1 language code.
// It never fails: empty text, unreliable detection and unsupported
// codes all fall back to the configured default.
type Detector struct {
	supported       map[string]struct{}
	defaultLanguage string
	logger          *logrus.Logger
}

func NewDetector(supportedLanguages []string, defaultLanguage string, logger *logrus.Logger) *Detector {
	supported := make(map[string]struct{}, len(supportedLanguages))
	for _, lang := range supportedLanguages {
		supported[strings.TrimSpace(lang)] = struct{}{}
	}
	return &Detector{
		supported:       supported,
		defaultLanguage: defaultLanguage,
		logger:          logger,
	}
}

// Detect returns the language code for the text. Idempotent and safe
// for concurrent use.
func (d *Detector) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return d.defaultLanguage
	}

	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" || !info.IsReliable() {
		d.logger.WithField("text_len", len(text)).Debug("language detection unreliable, using default")
		return d.defaultLanguage
	}

	if _, ok := d.supported[code]; !ok {
		d.logger.WithField("detected", code).Debug("detected language not supported, using default")
		return d.defaultLanguage
	}

	return code
}

// IsSupported reports whether the code is in the configured set.
func (d *Detector) IsSupported(code string) bool {
	_, ok := d.supported[code]
	return ok
}
