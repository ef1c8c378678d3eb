package logger

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// ConsoleHook mirrors log entries to stdout without blocking the
// logging path.
type ConsoleHook struct {
	logChan chan string
	done    chan struct{}
	wg      sync.WaitGroup
}

func NewConsoleHook() *ConsoleHook {
	hook := &ConsoleHook{
		logChan: make(chan string, 1024),
		done:    make(chan struct{}),
	}
	hook.wg.Add(1)
	go hook.drain()
	return hook
}

func (h *ConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	select {
	case h.logChan <- line:
	default:
	}
	return nil
}

func (h *ConsoleHook) drain() {
	defer h.wg.Done()
	for {
		select {
		case line := <-h.logChan:
			fmt.Print(line)
		case <-h.done:
			for len(h.logChan) > 0 {
				fmt.Print(<-h.logChan)
			}
			return
		}
	}
}

func (h *ConsoleHook) Close() {
	close(h.done)
	h.wg.Wait()
}

func (h *ConsoleHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
