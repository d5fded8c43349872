// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package textvec

// stopwords holds folded English and Portuguese function words.
var stopwords = map[string]struct{}{
	"about": {}, "above": {}, "after": {}, "again": {}, "against": {},
	"all": {}, "am": {}, "an": {}, "and": {}, "any": {}, "ao": {}, "aos": {},
	"aquela": {}, "aquelas": {}, "aquele": {}, "aqueles": {}, "aquilo": {},
	"are": {}, "as": {}, "at": {}, "ate": {}, "be": {}, "because": {},
	"been": {}, "before": {}, "being": {}, "below": {}, "between": {},
	"both": {}, "but": {}, "by": {}, "can": {}, "com": {}, "como": {},
	"could": {}, "da": {}, "das": {}, "de": {}, "dela": {}, "delas": {},
	"dele": {}, "deles": {}, "depois": {}, "did": {}, "do": {}, "does": {},
	"doing": {}, "dos": {}, "down": {}, "during": {}, "each": {}, "ela": {},
	"elas": {}, "ele": {}, "eles": {}, "em": {}, "entre": {}, "era": {},
	"eram": {}, "essa": {}, "essas": {}, "esse": {}, "esses": {}, "esta": {},
	"estas": {}, "este": {}, "estes": {}, "eu": {}, "few": {}, "foi": {},
	"for": {}, "foram": {}, "from": {}, "further": {}, "ha": {}, "had": {},
	"has": {}, "have": {}, "having": {}, "he": {}, "her": {}, "here": {},
	"hers": {}, "herself": {}, "him": {}, "himself": {}, "his": {}, "how": {},
	"if": {}, "in": {}, "into": {}, "is": {}, "isso": {}, "isto": {},
	"it": {}, "its": {}, "itself": {}, "ja": {}, "just": {}, "la": {},
	"lhe": {}, "lhes": {}, "mais": {}, "mas": {}, "me": {}, "mesmo": {},
	"meu": {}, "meus": {}, "minha": {}, "minhas": {}, "more": {}, "most": {},
	"muito": {}, "my": {}, "myself": {}, "na": {}, "nas": {}, "nem": {},
	"no": {}, "nor": {}, "nos": {}, "nossa": {}, "nossas": {}, "nosso": {},
	"nossos": {}, "not": {}, "now": {}, "num": {}, "numa": {}, "of": {},
	"off": {}, "on": {}, "once": {}, "only": {}, "or": {}, "os": {},
	"other": {}, "ou": {}, "our": {}, "ours": {}, "ourselves": {}, "out": {},
	"over": {}, "own": {}, "para": {}, "pela": {}, "pelas": {}, "pelo": {},
	"pelos": {}, "por": {}, "quando": {}, "que": {}, "quem": {}, "same": {},
	"se": {}, "sem": {}, "ser": {}, "seu": {}, "seus": {}, "she": {},
	"should": {}, "so": {}, "some": {}, "sua": {}, "suas": {}, "such": {},
	"tambem": {}, "te": {}, "tem": {}, "than": {}, "that": {}, "the": {},
	"their": {}, "theirs": {}, "them": {}, "themselves": {}, "then": {},
	"there": {}, "these": {}, "they": {}, "this": {}, "those": {},
	"through": {}, "tinha": {}, "to": {}, "too": {}, "tu": {}, "tua": {},
	"tuas": {}, "um": {}, "uma": {}, "umas": {}, "under": {}, "uns": {},
	"until": {}, "up": {}, "very": {}, "voce": {}, "voces": {}, "vos": {},
	"was": {}, "we": {}, "were": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "while": {}, "who": {}, "whom": {}, "why": {}, "will": {},
	"with": {}, "would": {}, "you": {}, "your": {}, "yours": {},
	"yourself": {}, "yourselves": {},
}
