// Package i18n renders human-readable messages for issue codes.
package i18n

// Translator retrieves localized messages for Issue codes.
// data provides the message parameters (for example, "value" or "want").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	if data == nil {
		data = map[string]string{}
	}
	if t.lang == "ja" {
		return jaMessage(code, data)
	}
	return enMessage(code, data)
}

func enMessage(code string, data map[string]string) string {
	switch code {
	case "type_mismatch":
		if data["value"] != "" {
			return data["value"] + " is not of type '" + data["want"] + "'"
		}
		return "invalid type"
	case "required":
		return "'" + data["name"] + "' is a required property"
	case "range":
		switch data["op"] {
		case "min":
			return data["value"] + " is less than the minimum of " + data["bound"]
		case "max":
			return data["value"] + " is greater than the maximum of " + data["bound"]
		case "xmin":
			return data["value"] + " is less than or equal to the exclusive minimum of " + data["bound"]
		case "xmax":
			return data["value"] + " is greater than or equal to the exclusive maximum of " + data["bound"]
		case "multiple":
			return data["value"] + " is not a multiple of " + data["bound"]
		case "min-properties":
			return data["value"] + " does not have enough properties"
		case "max-properties":
			return data["value"] + " has too many properties"
		case "min-contains":
			return data["value"] + " has fewer than " + data["bound"] + " items matching the contains schema"
		case "max-contains":
			return data["value"] + " has more than " + data["bound"] + " items matching the contains schema"
		}
		return "out of range"
	case "length":
		if data["op"] == "max" {
			return data["value"] + " is too long"
		}
		return data["value"] + " is too short"
	case "pattern":
		return data["value"] + " does not match '" + data["pattern"] + "'"
	case "format":
		return data["value"] + " is not a '" + data["format"] + "'"
	case "dependency":
		return "'" + data["dependent"] + "' is a dependency of '" + data["trigger"] + "'"
	case "uniqueness":
		return data["value"] + " has non-unique elements"
	case "const_mismatch":
		return data["value"] + " does not equal the const " + data["want"]
	case "enum_membership":
		return data["value"] + " is not one of " + data["allowed"]
	case "arity":
		return "expected " + data["want"] + " items, got " + data["got"]
	case "unknown_key":
		return "additional properties are not allowed ('" + data["key"] + "' was unexpected)"
	case "no_match":
		return data["value"] + " is not valid under any of the given schemas"
	case "ambiguous_match":
		return data["value"] + " is valid under " + data["count"] + " schemas, expected exactly one"
	case "not_allowed":
		return data["value"] + " should not be valid under the given schema"
	case "parse_error":
		if data["detail"] != "" {
			return "parse error: " + data["detail"]
		}
		return "parse error"
	}
	return code
}

func jaMessage(code string, data map[string]string) string {
	switch code {
	case "type_mismatch":
		return data["value"] + " は型 '" + data["want"] + "' ではありません"
	case "required":
		return "必須プロパティ '" + data["name"] + "' が不足しています"
	case "range":
		return "範囲外です"
	case "length":
		if data["op"] == "max" {
			return data["value"] + " は長すぎます"
		}
		return data["value"] + " は短すぎます"
	case "pattern":
		return data["value"] + " はパターン '" + data["pattern"] + "' に一致しません"
	case "format":
		return data["value"] + " は '" + data["format"] + "' 形式ではありません"
	case "dependency":
		return "'" + data["dependent"] + "' は '" + data["trigger"] + "' の依存項目です"
	case "uniqueness":
		return data["value"] + " に重複要素があります"
	case "const_mismatch":
		return data["value"] + " は定数 " + data["want"] + " と一致しません"
	case "enum_membership":
		return data["value"] + " は " + data["allowed"] + " のいずれでもありません"
	case "arity":
		return data["want"] + " 要素が必要ですが " + data["got"] + " 要素でした"
	case "unknown_key":
		return "未知のキー '" + data["key"] + "' は許可されていません"
	case "no_match":
		return "いずれのスキーマにも一致しません"
	case "ambiguous_match":
		return data["count"] + " 個のスキーマに一致しました（ちょうど 1 個が必要です）"
	case "not_allowed":
		return "このスキーマに一致してはいけません"
	case "parse_error":
		return "解析エラー"
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
