package taskqueue

import (
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

func logrusNop() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

func logFields(topic string, attempt int) logrus.Fields {
	return logrus.Fields{
		"topic":   topic,
		"attempt": attempt,
	}
}

// errorText is err's message cut to at most limit bytes on a rune boundary.
func errorText(err error, limit int) string {
	if err == nil || limit <= 0 {
		return ""
	}
	msg := err.Error()
	if len(msg) <= limit {
		return msg
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut]
}
