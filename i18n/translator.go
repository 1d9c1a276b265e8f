package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dict = map[string]map[string]string{
	"en": {
		"invalid_type":      "invalid type",
		"unknown_key":       "unknown key",
		"duplicate_key":     "duplicate key",
		"unsupported_shape": "unsupported shape",
		"null_ignored":      "null ignored for non-optional destination",
		"overflow":          "number does not fit",
		"truncated":         "truncated",
		"stopped":           "record complete, remaining input skipped",
		"parse_error":       "parse error",
	},
	"ja": {
		"invalid_type":      "型が不正です",
		"unknown_key":       "未知のキーです",
		"duplicate_key":     "キーが重複しています",
		"unsupported_shape": "対応していない構造です",
		"null_ignored":      "null は任意項目以外では無視されます",
		"overflow":          "数値が範囲外です",
		"truncated":         "打ち切られました",
		"stopped":           "レコードが完成したため残りの入力を読み飛ばしました",
		"parse_error":       "解析エラー",
	},
}

var detailLabels = map[string]map[string]string{
	"en": {"key": "key", "expected": "expected"},
	"ja": {"key": "キー", "expected": "期待値"},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dict[t.lang][code]
	if !ok {
		return code
	}
	for _, name := range []string{"key", "expected"} {
		if v := data[name]; v != "" {
			msg += " (" + detailLabels[t.lang][name] + ": " + v + ")"
		}
	}
	return msg
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
