package classify

import "github.com/edusosyal/hapbilgi/internal/models"

// topicRule maps a topic refinement tag to its trigger keywords.
type topicRule struct {
	tag      string
	keywords []string
}

// subjectRule maps a subject tag to its trigger keywords and the ordered
// topic table checked once the subject has matched.
type subjectRule struct {
	tag      string
	keywords []string
	topics   []topicRule
}

// subjectRules is checked in priority order: the first subject with any
// keyword hit wins, regardless of how many keywords other subjects match.
var subjectRules = []subjectRule{
	{
		tag:      "#Matematik",
		keywords: []string{"matematik", "integral", "türev", "limit", "geometri", "trigonometri", "denklem", "fonksiyon", "logaritma", "olasılık", "polinom", "üslü sayı"},
		topics: []topicRule{
			{tag: "#Kalkülüs", keywords: []string{"integral", "türev", "limit", "diferansiyel"}},
			{tag: "#Geometri", keywords: []string{"geometri", "üçgen", "çember", "açı"}},
			{tag: "#Cebir", keywords: []string{"denklem", "polinom", "eşitsizlik", "logaritma"}},
			{tag: "#Trigonometri", keywords: []string{"trigonometri", "sinüs", "kosinüs"}},
			{tag: "#Olasılık", keywords: []string{"olasılık", "permütasyon", "kombinasyon"}},
		},
	},
	{
		tag:      "#Fizik",
		keywords: []string{"fizik", "kuvvet", "hareket", "enerji", "elektrik", "manyetik", "optik", "dalga", "ivme", "newton"},
		topics: []topicRule{
			{tag: "#Mekanik", keywords: []string{"kuvvet", "hareket", "ivme", "newton"}},
			{tag: "#Elektrik", keywords: []string{"elektrik", "devre", "akım", "manyetik"}},
			{tag: "#Optik", keywords: []string{"optik", "ışık", "mercek", "ayna"}},
			{tag: "#Dalgalar", keywords: []string{"dalga", "frekans", "ses"}},
		},
	},
	{
		tag:      "#Kimya",
		keywords: []string{"kimya", "element", "bileşik", "asit", "baz", "mol", "tepkime", "periyodik", "çözelti"},
		topics: []topicRule{
			{tag: "#AsitBaz", keywords: []string{"asit", "baz", "ph"}},
			{tag: "#PeriyodikSistem", keywords: []string{"periyodik", "element"}},
			{tag: "#Organik", keywords: []string{"organik", "karbon", "hidrokarbon"}},
			{tag: "#Tepkimeler", keywords: []string{"tepkime", "yanma", "denge"}},
		},
	},
	{
		tag:      "#Biyoloji",
		keywords: []string{"biyoloji", "hücre", "dna", "gen", "protein", "enzim", "fotosentez", "mitoz", "mayoz", "bitki"},
		topics: []topicRule{
			{tag: "#Hücre", keywords: []string{"hücre", "mitoz", "mayoz", "organel"}},
			{tag: "#Genetik", keywords: []string{"dna", "gen", "kalıtım", "kromozom"}},
			{tag: "#Botanik", keywords: []string{"bitki", "fotosentez"}},
			{tag: "#Sistemler", keywords: []string{"sindirim", "dolaşım", "solunum sistemi"}},
		},
	},
	{
		tag:      "#Tarih",
		keywords: []string{"tarih", "osmanlı", "savaş", "antlaşma", "devlet", "inkılap", "padişah", "cumhuriyet"},
		topics: []topicRule{
			{tag: "#Osmanlı", keywords: []string{"osmanlı", "padişah", "fetih"}},
			{tag: "#Cumhuriyet", keywords: []string{"cumhuriyet", "inkılap", "atatürk"}},
			{tag: "#DünyaTarihi", keywords: []string{"dünya savaşı", "ihtilal", "kavimler"}},
		},
	},
	{
		tag:      "#Coğrafya",
		keywords: []string{"coğrafya", "iklim", "harita", "nüfus", "deprem", "akarsu", "kıta", "yeryüzü"},
		topics: []topicRule{
			{tag: "#İklim", keywords: []string{"iklim", "yağış", "sıcaklık"}},
			{tag: "#Nüfus", keywords: []string{"nüfus", "göç", "yerleşme"}},
			{tag: "#FizikiCoğrafya", keywords: []string{"deprem", "akarsu", "dağ", "ova"}},
		},
	},
	{
		tag:      "#Türkçe",
		keywords: []string{"türkçe", "dilbilgisi", "paragraf", "cümle", "yazım", "noktalama", "edebiyat", "şiir", "roman"},
		topics: []topicRule{
			{tag: "#Dilbilgisi", keywords: []string{"dilbilgisi", "fiil", "yazım", "noktalama"}},
			{tag: "#Paragraf", keywords: []string{"paragraf", "anlatım", "ana fikir"}},
			{tag: "#Edebiyat", keywords: []string{"edebiyat", "şiir", "roman", "divan"}},
		},
	},
	{
		tag:      "#İngilizce",
		keywords: []string{"ingilizce", "english", "grammar", "vocabulary", "tense", "preposition", "çeviri"},
		topics: []topicRule{
			{tag: "#Gramer", keywords: []string{"grammar", "tense", "preposition"}},
			{tag: "#Kelime", keywords: []string{"vocabulary", "kelime", "phrasal"}},
		},
	},
	{
		tag:      "#Felsefe",
		keywords: []string{"felsefe", "filozof", "etik", "mantık", "epistemoloji", "varlık"},
		topics: []topicRule{
			{tag: "#Etik", keywords: []string{"etik", "ahlak felsefesi"}},
			{tag: "#Mantık", keywords: []string{"mantık", "önerme", "çıkarım"}},
		},
	},
	{
		tag:      "#DinKültürü",
		keywords: []string{"din kültürü", "ibadet", "peygamber", "kuran", "hac", "zekat"},
		topics: []topicRule{
			{tag: "#İbadet", keywords: []string{"ibadet", "namaz", "oruç", "hac"}},
			{tag: "#Siyer", keywords: []string{"peygamber", "hicret", "mekke"}},
		},
	},
}

// examRule maps an exam-type tag to its trigger keywords.
type examRule struct {
	tag      string
	keywords []string
}

// examRules is checked in order; first hit wins.
var examRules = []examRule{
	{tag: "#YKS", keywords: []string{"yks", "tyt", "ayt", "üniversite sınavı", "üniversiteye hazırlık"}},
	{tag: "#LGS", keywords: []string{"lgs", "liselere geçiş"}},
	{tag: "#KPSS", keywords: []string{"kpss", "memurluk sınavı"}},
	{tag: "#ALES", keywords: []string{"ales", "lisansüstü"}},
	{tag: "#YÖS", keywords: []string{"yös", "yabancı öğrenci sınavı"}},
}

// Difficulty tags for the tag pipeline. Easy keywords are checked before
// hard keywords; text carrying both signals classifies as easy.
const (
	TagEasy   = "#Kolay"
	TagMedium = "#Orta"
	TagHard   = "#Zor"
)

var (
	easyTagKeywords = []string{"kolay", "basit", "temel", "giriş seviyesi"}
	hardTagKeywords = []string{"zor", "karmaşık", "ileri seviye", "güç"}
)

// categoryRules drives the record-level category detector. It deliberately
// overlaps the subject tables above without being identical to them; the
// two detectors are kept separate.
var categoryRules = []struct {
	category models.Category
	keywords []string
}{
	{models.CategoryMath, []string{"matematik", "integral", "türev", "geometri", "denklem"}},
	{models.CategoryPhysics, []string{"fizik", "kuvvet", "enerji", "elektrik"}},
	{models.CategoryChemistry, []string{"kimya", "asit", "mol", "element"}},
	{models.CategoryBiology, []string{"biyoloji", "hücre", "dna", "fotosentez"}},
	{models.CategoryHistory, []string{"tarih", "osmanlı", "cumhuriyet"}},
	{models.CategoryGeography, []string{"coğrafya", "iklim", "harita"}},
	{models.CategoryNativeLanguage, []string{"türkçe", "dilbilgisi", "paragraf", "edebiyat"}},
	{models.CategoryForeignLanguage, []string{"ingilizce", "english", "grammar"}},
}

// Record-level difficulty keywords, independent of the tag pipeline sets.
var (
	easyKeywords = []string{"kolay", "basit"}
	hardKeywords = []string{"zor", "karmaşık"}
)
