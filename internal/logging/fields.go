package logging

import "github.com/sirupsen/logrus"

// TranslationFields describes one translation request
func TranslationFields(key, fromLang, toLang string) logrus.Fields {
	return logrus.Fields{
		"key":  key,
		"from": fromLang,
		"to":   toLang,
	}
}

// DictionaryFields describes a dictionary tier and its backing file
func DictionaryFields(tier, path string) logrus.Fields {
	return logrus.Fields{
		"tier": tier,
		"path": path,
	}
}
