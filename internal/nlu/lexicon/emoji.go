// internal/nlu/lexicon/emoji.go
package lexicon

// Keys are stored without the U+FE0F variation selector; callers strip it
// before lookup.
var emojiWords = map[string]string{
	// groceries
	"🍚": "चावल", "🍬": "चीनी", "🧂": "नमक", "🥛": "दूध", "🍵": "चाय",
	"🫖": "चाय", "☕": "कॉफी", "🧈": "मक्खन", "🥚": "अंडा", "🍞": "ब्रेड",
	"🥔": "आलू", "🧅": "प्याज", "🍅": "टमाटर", "🌶": "मिर्च", "🧀": "पनीर",
	"🍪": "बिस्कुट", "🧼": "साबुन", "🛢": "तेल", "🫒": "तेल", "🌾": "आटा",
	"🥣": "दाल", "🍯": "गुड़", "🍫": "चॉकलेट", "🍎": "सेब", "🍌": "केला",
	"🥭": "आम", "🍇": "अंगूर", "🍊": "संतरा", "🥕": "गाजर", "🥒": "खीरा",
	"🧄": "लहसुन", "🫚": "अदरक", "🥜": "मूंगफली", "🍋": "नींबू", "🥥": "नारियल",
	"🧴": "शैम्पू",

	// actions
	"➕": "जोड़ो", "➖": "घटाओ", "✏": "बदलो", "📝": "अपडेट", "🔍": "खोजो",
	"🔎": "खोजो", "📦": "स्टॉक", "📊": "रिपोर्ट", "📈": "बिक्री", "📉": "कम",
	"🛒": "ऑर्डर", "🧾": "बिल", "💰": "कीमत", "💵": "रुपये", "💸": "खर्च",
	"🏷": "दाम", "👤": "ग्राहक", "👥": "ग्राहक", "⚠": "कम", "❌": "नहीं",
	"🚫": "नहीं", "✅": "हाँ", "🔝": "टॉप", "🏆": "टॉप",

	// dates
	"📅": "तारीख", "📆": "तारीख", "🗓": "तारीख", "⏰": "समय", "🕒": "समय",
}

// EmojiWords returns a fresh emoji to Hindi word table.
func EmojiWords() map[string]string {
	out := make(map[string]string, len(emojiWords))
	for k, v := range emojiWords {
		out[k] = v
	}
	return out
}
