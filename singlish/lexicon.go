package singlish

/**
 * singlish - A Singlish to Sinhala transliteration library
 * Copyright Subin Siby <mail at subinsb (.) com>, 2021
 * Licensed under AGPL-3.0-only. See LICENSE.txt
 */

// Acronyms, proper nouns and brand names that are written the same way in
// Sinhala chat. Matched case-sensitively.
var defaultAllowList = []string{
	"NIC", "PM", "AM", "USA", "UK", "ATM", "SMS", "OK", "TV", "PC", "ID",
	"GPS", "CEO", "IT", "Wi-Fi", "COVID", "DHL",
	"Colombo", "Kandy", "Galle",
	"Facebook", "WhatsApp", "YouTube", "Google", "iPhone",
}

// Words attached to an amount that are not written as digits
var defaultCurrencyMarkers = []string{
	"Rs", "RS", "rs", "LKR", "USD", "EUR", "GBP", "INR",
}

// Unit words that follow a number, "20 kg"
var defaultUnits = []string{
	"kg", "g", "mg", "km", "m", "cm", "mm", "ml", "l", "ft", "in",
	"hrs", "min", "sec", "kmph",
	"st", "nd", "rd", "th",
}

// English words commonly typed into Singlish text. Matched case-insensitively.
// Words that are also ordinary Singlish spellings (api, mama, man, one,
// ape, ban, hari) must never be listed here.
var defaultLexicon = []string{
	// function words
	"i", "you", "he", "she", "we", "they", "it", "my", "your", "his", "her",
	"our", "their", "the", "of", "to", "at", "from", "in", "on", "for", "with",
	"and", "or", "but", "is", "are", "was", "were", "be", "been", "am", "will",
	"would", "can", "could", "should", "have", "has", "had", "do", "does",
	"did", "not", "no", "noo", "yes", "this", "that", "these", "those",
	"what", "when", "where", "why", "how", "who", "which", "there", "now",
	"then", "please", "sorry", "thanks", "thank", "okay", "hello", "hi", "bye",
	"up", "down", "out", "into", "about", "after", "before", "very", "just",

	// verbs
	"say", "said", "pick", "drop", "attach", "arrange", "call", "send", "check",
	"book", "cancel", "update", "download", "upload", "share", "post", "like",
	"love", "miss", "start", "stop", "finish", "work", "study", "play", "watch",

	// nouns and adjectives
	"phone", "mobile", "battery", "charger", "laptop", "computer", "email",
	"message", "password", "internet", "online", "wifi", "app", "video",
	"photo", "camera", "brother", "sister", "friend", "boss", "sir", "madam",
	"teacher", "doctor", "nurse", "driver", "private", "bus", "train",
	"car", "van", "taxi", "bike", "tyre", "tyres", "road", "traffic", "jam",
	"accident", "film", "movie", "song", "music", "party", "birthday",
	"holiday", "office", "meeting", "school", "class", "exam", "results",
	"campus", "university", "documents", "document", "letter", "resignation",
	"report", "file", "form", "bag", "shop", "bank", "card", "cash", "bill",
	"salary", "crowd", "condition", "son", "daughter", "wife", "husband",
	"baby", "busy", "free", "late", "early", "bad", "good", "nice", "best",
	"super", "cool", "sure", "problem", "time", "today", "tomorrow",
	"yesterday", "week", "month", "year", "morning", "night", "weekend",
	"pirates", "caribbean", "colombo", "kandy",

	// left as typed
	"mage", "eke",
}
