// internal/nlu/intent/rules.go
package intent

// Rule order is significant: the first matching intent wins, so narrower
// intents precede the broad ones they overlap with (low stock before
// inventory, inventory report before report).

var englishRules = []Rule{
	rule(Register,
		`(?i)\b(?:register|sign\s*up|signup|enroll)\b`,
		`(?i)\b(?:create|open)\s+(?:an?\s+|my\s+)?(?:new\s+)?account\b`,
	),
	rule(AddProduct,
		`(?i)\b(?:add|insert|create)\s+(?:a\s+)?(?:new\s+)?(?:product|item)s?\b`,
		`(?i)\bnew\s+(?:product|item)\b`,
		`(?i)\badd\b`,
	),
	rule(EditStock,
		`(?i)\b(?:update|edit|change|set|modify|adjust)\b.*\b(?:stock|quantity|qty|inventory)\b`,
		`(?i)\b(?:stock|quantity|qty)\s+(?:of|for)\s+.+\s+(?:to|=)\s+-?\d+`,
		`(?i)\b(?:update|set)\s+.+\s+to\s+-?\d+`,
	).except(2, `(?i)\b(?:price|prices|rate|rates|mrp|cost|keemat|kimat)\b|कीमत|दाम`),
	rule(GetLowStock,
		`(?i)\blow\s+(?:on\s+)?stock\b`,
		`(?i)\b(?:running|run|ran)\s+(?:low|out)\b`,
		`(?i)\bout\s+of\s+stock\b`,
		`(?i)\b(?:stock|items?|products?)\b.*\b(?:below|under|less\s+than|lower\s+than)\s+\d+`,
		`(?i)\b(?:restock|reorder)\b`,
	),
	rule(GetInventoryReport,
		`(?i)\b(?:inventory|stock)\s+(?:report|summary|statement)\b`,
	),
	rule(GetTopProducts,
		`(?i)\b(?:top|best)[\s-]*(?:selling|seller|sold)?\s*(?:products?|items?)\b`,
		`(?i)\bbest\s*sell(?:ers?|ing)\b`,
		`(?i)\bmost\s+(?:sold|popular|selling)\b`,
	),
	rule(GetCustomerData,
		`(?i)\b(?:customers?|clients?|buyers?)\b`,
	),
	rule(GetReport,
		`(?i)\b(?:sales|sale|report|revenue|earnings|income|profit|turnover)\b`,
		`(?i)\bhow\s+much\s+(?:did\s+)?(?:i|we)\s+(?:sell|sold|earn|make)\b`,
	),
	rule(GetOrders,
		`(?i)\borders?\b`,
		`(?i)\bpurchases?\b`,
	),
	rule(SearchProduct,
		`(?i)\b(?:search|find|look\s*up|lookup|look\s+for)\b`,
		`(?i)\bdo\s+(?:you|we)\s+have\b`,
		`(?i)\bis\s+there\s+any\b`,
		`(?i)\bavailable\b`,
	),
	rule(GetInventory,
		`(?i)\b(?:inventory|stocks?)\b`,
		`(?i)\b(?:show|list|view|display)\s+(?:all\s+|my\s+)?(?:products|items)\b`,
		`(?i)\bhow\s+much\b.*\bleft\b`,
	),
}

var hindiRules = []Rule{
	rule(Register,
		`रजिस्टर|पंजीकरण|खाता\s*(?:खोलो|बनाओ|खोलें)`,
		`(?i)\bregister\b`,
	),
	rule(AddProduct,
		`जोड़ो|जोड़ें|जोड़िए|जोड़\s*दो|ऐड`,
		`नया\s+(?:सामान|माल|प्रोडक्ट)|नई\s+(?:चीज़|चीज)`,
		`(?i)\badd\b`,
	),
	rule(EditStock,
		`(?:का|की|के)\s+(?:स्टॉक|मात्रा|(?i:stock))\s+-?\d+`,
		`(?:स्टॉक|मात्रा|(?i:stock))\s+-?\d+\s*(?:करो|करें|कर\s*दो|कर\s*दें)`,
		`(?:स्टॉक|मात्रा|(?i:stock))\s+(?:अपडेट|बदलो|बदलें|(?i:update))`,
		`अपडेट\s+करो|बदलो|बदलें`,
	),
	rule(GetLowStock,
		`कम\s+(?:स्टॉक|माल|(?i:stock))`,
		`(?:स्टॉक|माल|सामान|(?i:stock)).*(?:से\s+कम|से\s+नीचे|कम\s+है|कम\s+हैं|खत्म)`,
		`\d+\s+से\s+(?:कम|नीचे)`,
	),
	rule(GetInventoryReport,
		`(?:स्टॉक|इन्वेंटरी|माल|(?i:stock|inventory))\s+(?:की\s+|का\s+)?(?:रिपोर्ट|(?i:report))`,
	),
	rule(GetTopProducts,
		`सबसे\s+(?:ज़्यादा|ज्यादा|अधिक)\s+(?:बिकने|बिका|बिके|बिकी|बिक)`,
		`(?:टॉप|(?i:top))\s+(?:प्रोडक्ट|सामान|(?i:products?|items?))`,
	),
	rule(GetCustomerData,
		`ग्राहक|कस्टमर|(?i:\bcustomers?\b)`,
	),
	rule(GetReport,
		`बिक्री|सेल्स|रिपोर्ट|हिसाब|कमाई|मुनाफा|(?i:\b(?:sales|report)\b)`,
	),
	rule(GetOrders,
		`ऑर्डर|आर्डर|(?i:\borders?\b)`,
	),
	rule(SearchProduct,
		`खोजो|ढूंढो|ढूँढो|तलाश|उपलब्ध|मिलेगा|है\s+क्या|(?i:\bsearch\b)`,
	),
	rule(GetInventory,
		`स्टॉक|इन्वेंटरी|माल|सामान|कितना\s+(?:बचा|है)|(?i:\b(?:stock|inventory)\b)`,
	),
}

// strongAddTriggers override negation: "add product rice, don't want the
// old price" is still an add request.
var strongAddTriggers = compileAll(
	`(?i)^\s*add\b`,
	`(?i)\badd\s+(?:a\s+)?(?:new\s+)?(?:product|item)\b`,
	`नया\s+(?:सामान|माल|प्रोडक्ट).*जोड़`,
	`(?:प्रोडक्ट|सामान|माल)\s+(?:जोड़ो|जोड़ें|ऐड)`,
)
