// internal/nlu/lexicon/transliteration.go
package lexicon

type pair struct {
	roman string
	dev   string
}

// Declaration order matters: the first romanized spelling of a Devanagari
// word is the one used when glossing back to Latin script.
var transliterations = []pair{
	// products
	{"chini", "चीनी"}, {"cheeni", "चीनी"}, {"chinni", "चीनी"}, {"shakkar", "शक्कर"},
	{"chawal", "चावल"}, {"chaval", "चावल"}, {"atta", "आटा"}, {"aata", "आटा"},
	{"dal", "दाल"}, {"daal", "दाल"}, {"tel", "तेल"}, {"namak", "नमक"},
	{"doodh", "दूध"}, {"dudh", "दूध"}, {"ghee", "घी"}, {"besan", "बेसन"},
	{"haldi", "हल्दी"}, {"mirch", "मिर्च"}, {"mirchi", "मिर्ची"}, {"jeera", "जीरा"},
	{"jira", "जीरा"}, {"suji", "सूजी"}, {"sooji", "सूजी"}, {"maida", "मैदा"},
	{"paneer", "पनीर"}, {"dahi", "दही"}, {"anda", "अंडा"}, {"ande", "अंडे"},
	{"sabun", "साबुन"}, {"pyaz", "प्याज"}, {"pyaaz", "प्याज"}, {"aloo", "आलू"},
	{"alu", "आलू"}, {"tamatar", "टमाटर"}, {"gud", "गुड़"}, {"chai", "चाय"},
	{"chay", "चाय"}, {"biskut", "बिस्कुट"}, {"makhan", "मक्खन"}, {"poha", "पोहा"},
	{"sarson", "सरसों"},

	// postpositions, auxiliaries, conjunctions
	{"ka", "का"}, {"ki", "की"}, {"ke", "के"}, {"ko", "को"}, {"se", "से"},
	{"tak", "तक"}, {"mein", "में"}, {"hai", "है"}, {"hain", "हैं"}, {"tha", "था"},
	{"aur", "और"}, {"bhi", "भी"}, {"ya", "या"}, {"ab", "अब"}, {"abhi", "अभी"},
	{"wala", "वाला"}, {"wale", "वाले"}, {"wali", "वाली"}, {"liye", "लिए"},
	{"beech", "बीच"}, {"bich", "बीच"},

	// verbs
	{"karo", "करो"}, {"karein", "करें"}, {"karen", "करें"}, {"kar", "कर"},
	{"kijiye", "कीजिए"}, {"dikhao", "दिखाओ"}, {"dikhaiye", "दिखाइए"}, {"dikha", "दिखा"},
	{"batao", "बताओ"}, {"bataiye", "बताइए"}, {"bata", "बता"}, {"jodo", "जोड़ो"},
	{"jodiye", "जोड़िए"}, {"joden", "जोड़ें"}, {"jod", "जोड़"}, {"badlo", "बदलो"},
	{"badlein", "बदलें"}, {"badal", "बदल"}, {"khojo", "खोजो"}, {"dhundo", "ढूंढो"},
	{"dhoondo", "ढूंढो"}, {"dhundho", "ढूंढो"}, {"talash", "तलाश"}, {"banao", "बनाओ"},
	{"kholo", "खोलो"}, {"bhejo", "भेजो"}, {"de", "दे"}, {"dena", "देना"},
	{"dijiye", "दीजिए"}, {"chahiye", "चाहिए"}, {"chahie", "चाहिए"}, {"mila", "मिला"},
	{"milega", "मिलेगा"}, {"hoga", "होगा"}, {"bikne", "बिकने"}, {"bika", "बिका"},
	{"bacha", "बचा"}, {"bache", "बचे"}, {"bachi", "बची"},

	// negation
	{"nahi", "नहीं"}, {"nahin", "नहीं"}, {"nai", "नहीं"}, {"mat", "मत"}, {"na", "ना"},

	// question words, quantifiers
	{"kitna", "कितना"}, {"kitni", "कितनी"}, {"kitne", "कितने"}, {"kya", "क्या"},
	{"kaun", "कौन"}, {"kaunsa", "कौनसा"}, {"kahan", "कहाँ"}, {"kam", "कम"},
	{"zyada", "ज़्यादा"}, {"jyada", "ज़्यादा"}, {"sabse", "सबसे"}, {"niche", "नीचे"},
	{"neeche", "नीचे"}, {"upar", "ऊपर"}, {"sab", "सब"}, {"sabhi", "सभी"},
	{"kuch", "कुछ"}, {"bahut", "बहुत"}, {"khatam", "खत्म"}, {"khatm", "खत्म"},

	// time
	{"aaj", "आज"}, {"kal", "कल"}, {"parso", "परसों"}, {"din", "दिन"},
	{"hafta", "हफ्ता"}, {"hafte", "हफ्ते"}, {"saptah", "सप्ताह"}, {"mahina", "महीना"},
	{"mahine", "महीने"}, {"maah", "माह"}, {"saal", "साल"}, {"pichhle", "पिछले"},
	{"pichle", "पिछले"}, {"pichhla", "पिछला"}, {"pichla", "पिछला"}, {"pehle", "पहले"},
	{"pahle", "पहले"}, {"tarikh", "तारीख"}, {"tareekh", "तारीख"},

	// commerce
	{"bikri", "बिक्री"}, {"maal", "माल"}, {"saman", "सामान"}, {"samaan", "सामान"},
	{"naya", "नया"}, {"nayi", "नई"}, {"naye", "नए"}, {"daam", "दाम"},
	{"keemat", "कीमत"}, {"kimat", "कीमत"}, {"rupaye", "रुपये"}, {"rupaiye", "रुपये"},
	{"kilo", "किलो"}, {"grahak", "ग्राहक"}, {"dukaan", "दुकान"}, {"dukan", "दुकान"},
	{"khata", "खाता"}, {"hisab", "हिसाब"}, {"hisaab", "हिसाब"}, {"kamai", "कमाई"},
	{"munafa", "मुनाफा"}, {"naam", "नाम"},

	// pronouns
	{"mujhe", "मुझे"}, {"hamein", "हमें"}, {"mera", "मेरा"}, {"meri", "मेरी"},
	{"mere", "मेरे"},
}

// englishAllowList holds Latin words that collide with a romanized Hindi
// spelling but must stay English.
var englishAllowList = []string{
	"to", "do", "the", "me", "main", "hi", "bus", "par", "is", "in", "on", "at",
	"a", "an", "of", "and", "or", "for", "from", "by", "my", "all", "add", "show",
	"update", "stock", "price", "set", "new", "get", "low", "top", "report", "order",
	"orders", "sale", "sales", "search", "find", "edit", "change", "item", "items",
	"product", "products", "kg", "g", "gm", "ml", "l", "pcs", "rs", "mrp", "rate",
	"qty", "no", "not", "dont", "don't", "want", "need", "list", "view", "last",
	"this", "week", "month", "today", "yesterday", "between", "below", "under",
	"less", "than", "customer", "customers", "register", "inventory", "we",
	"us", "it", "be", "are", "was", "so", "go", "up", "he", "she", "man", "dam",
	"bike", "pan", "mane", "karma", "chat", "ho", "hum", "jam", "ram", "mat",
}

// hindiBeforeHindi holds allow-listed words that keep their Hindi reading
// when the next word is Hindi.
var hindiBeforeHindi = map[string]struct{}{"mat": {}}

// Transliterations returns a fresh romanized to Devanagari lookup table.
func Transliterations() map[string]string {
	out := make(map[string]string, len(transliterations))
	for _, p := range transliterations {
		if _, ok := out[p.roman]; !ok {
			out[p.roman] = p.dev
		}
	}
	return out
}

// Romanizations returns the Devanagari to romanized gloss table, keeping
// the first spelling declared for each word.
func Romanizations() map[string]string {
	out := make(map[string]string, len(transliterations))
	for _, p := range transliterations {
		if _, ok := out[p.dev]; !ok {
			out[p.dev] = p.roman
		}
	}
	return out
}

// EnglishAllowList returns the set of Latin words never transliterated.
func EnglishAllowList() map[string]struct{} {
	out := make(map[string]struct{}, len(englishAllowList))
	for _, w := range englishAllowList {
		out[w] = struct{}{}
	}
	return out
}
