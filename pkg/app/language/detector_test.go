package language_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/veloxchat/sentinel/pkg/app/language"
)

func newTestDetector() *language.Detector {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return language.NewDetector([]string{"es", "en", "pt", "fr", "de", "it"}, "es", logger)
}

func TestDetect_Spanish(t *testing.T) {
	d := newTestDetector()
	assert.Equal(t, "es", d.Detect("hola, ¿cómo estás? espero que tengas un buen día hoy"))
}

func TestDetect_English(t *testing.T) {
	d := newTestDetector()
	assert.Equal(t, "en", d.Detect("hello there, I hope you are having a wonderful day today"))
}

func TestDetect_EmptyTextFallsBackToDefault(t *testing.T) {
	d := newTestDetector()
	assert.Equal(t, "es", d.Detect(""))
	assert.Equal(t, "es", d.Detect("   "))
}

func TestDetect_ShortAmbiguousTextFallsBackToDefault(t *testing.T) {
	d := newTestDetector()
	// too short for a reliable detection
	assert.Equal(t, "es", d.Detect("ok"))
}

func TestDetect_UnsupportedLanguageFallsBackToDefault(t *testing.T) {
	d := newTestDetector()
	// russian is detectable but not in the supported set
	assert.Equal(t, "es", d.Detect("привет, как у тебя дела сегодня? надеюсь, всё хорошо"))
}

func TestIsSupported(t *testing.T) {
	d := newTestDetector()
	assert.True(t, d.IsSupported("en"))
	assert.False(t, d.IsSupported("ru"))
}
