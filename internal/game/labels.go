package game

// Locale selects the language the narrator answers in and the label set
// used for composed action text and fixed notices.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleZH Locale = "zh"
)

// labels maps label keys to display strings per locale. Only the strings
// the core itself renders live here; everything else is the UI's problem.
var labels = map[Locale]map[string]string{
	LocaleEN: {
		"action.use":           "Use",
		"action.take":          "Take",
		"action.look":          "Look at",
		"action.go":            "Go to",
		"action.talk":          "Talk to",
		"action.attack":        "Attack",
		"action.with":          "with",
		"bodypart.head":        "Head",
		"bodypart.torso":       "Torso",
		"bodypart.overtop":     "Overtop",
		"bodypart.legs":        "Legs",
		"bodypart.underwear":   "Underwear",
		"bodypart.left_foot":   "Left Foot",
		"bodypart.right_foot":  "Right Foot",
		"bodypart.left_hand":   "Left Hand",
		"bodypart.right_hand":  "Right Hand",
		"error.connection":     "The connection flickers. Please try again.",
		"choice.look":          "What do I see?",
		"choice.belongings":    "Check my belongings.",
		"choice.say_nothing":   "Say nothing.",
		"choice.continue":      "Continue forward.",
	},
	LocaleZH: {
		"action.use":           "使用",
		"action.take":          "拿取",
		"action.look":          "查看",
		"action.go":            "前往",
		"action.talk":          "交谈",
		"action.attack":        "攻击",
		"action.with":          "用",
		"bodypart.head":        "头部",
		"bodypart.torso":       "躯干",
		"bodypart.overtop":     "外套",
		"bodypart.legs":        "腿部",
		"bodypart.underwear":   "内衣",
		"bodypart.left_foot":   "左脚",
		"bodypart.right_foot":  "右脚",
		"bodypart.left_hand":   "左手",
		"bodypart.right_hand":  "右手",
		"error.connection":     "连接闪烁不定，请再试一次。",
		"choice.look":          "我看到了什么？",
		"choice.belongings":    "检查我的物品。",
		"choice.say_nothing":   "保持沉默。",
		"choice.continue":      "继续前进。",
	},
}

// Label resolves a label key for a locale, falling back to English and
// finally to the key itself so unknown keys stay visible instead of empty.
func Label(loc Locale, key string) string {
	if m, ok := labels[loc]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := labels[LocaleEN][key]; ok {
		return s
	}
	return key
}

// DefaultChoices returns the standing quick replies offered after a DM
// message. The narrator does not generate choices; these are fixed.
func DefaultChoices(loc Locale) []string {
	return []string{
		Label(loc, "choice.look"),
		Label(loc, "choice.belongings"),
		Label(loc, "choice.say_nothing"),
		Label(loc, "choice.continue"),
	}
}
