// Package checklist links evaluation criteria to transcript moments via
// keyword search, for highlighting and navigation in the call review UI.
package checklist

// Criteria maps a checklist criterion ID to its trigger keywords. Keywords
// are lowercase substrings, often stems, so one entry covers several word
// forms ("подыск" matches "подыскиваем", "подыскать"). Two vocabularies:
// the v4_* set scores first calls, the v5_* set repeat calls. This is
// configuration data; extending a list does not change the matching logic.
var Criteria = map[string][]string{
	// first call
	"v4_interest": {
		"интерес", "подыск", "ищем", "ищу", "хотим купить", "хотел бы",
		"рассматрива", "присматрива", "планируем купить",
	},
	"v4_location": {
		"район", "локац", "где находится", "адрес", "далеко от", "рядом с",
		"метро", "центр города",
	},
	"v4_payment": {
		"ипотек", "рассрочк", "наличны", "оплат", "первоначальный взнос",
		"бюджет", "кредит", "материнск",
	},
	"v4_goal": {
		"для себя", "для детей", "инвестиц", "сдавать", "переезд",
		"для жизни", "цель покупки",
	},
	"v4_history": {
		"уже смотрели", "уже были", "раньше обраща", "смотрели у",
		"другие застройщик", "сравнива",
	},
	"v4_action": {
		"записать на показ", "приезжайте", "встреч", "покажу", "экскурс",
		"забронир", "когда вам удобно",
	},
	// repeat call
	"v5_greeting": {
		"добрый день", "здравствуйте", "это снова", "мы с вами общались",
		"договаривались созвониться",
	},
	"v5_actions": {
		"посмотрели", "обсудили с", "посоветовались", "подумали",
		"изучили", "успели",
	},
	"v5_next_step": {
		"следующий шаг", "давайте назнач", "предлагаю", "созвонимся",
		"отправлю", "пришлю", "жду вас",
	},
	"v5_objections": {
		"дорого", "подумаем", "не уверен", "смущает", "но у других",
		"не устраивает", "сомнева",
	},
	"v5_informal": {
		"кстати", "честно говоря", "между нами", "по секрету",
		"скажу прямо",
	},
}
