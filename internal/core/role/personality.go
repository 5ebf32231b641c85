package role

import (
	"fmt"

	"github.com/samber/lo"
)

type traits struct {
	keywords []string
	positive string
	negative string
	career   string
}

var roleTraits = [RoleCount]traits{
	Friend: {
		keywords: []string{"独立", "自主", "坚持", "竞争"},
		positive: "独立自主、意志坚定、自信勇敢、重义气",
		negative: "固执己见、不善变通、争强好胜、我行我素",
		career:   "适合独立创业、自由职业、竞技运动等",
	},
	RobWealth: {
		keywords: []string{"社交", "投机", "冲动", "豪爽"},
		positive: "豪爽大方、善于交际、行动力强、敢于冒险",
		negative: "冲动浮躁、易破财、嫉妒心强、不守规则",
		career:   "适合销售、投资、娱乐行业等",
	},
	EatingGod: {
		keywords: []string{"才华", "享受", "温和", "艺术"},
		positive: "才华横溢、性情温和、懂得享受、有艺术天赋",
		negative: "贪图安逸、缺乏进取、过于理想化",
		career:   "适合餐饮、艺术、教育、创意产业等",
	},
	HurtingOfficer: {
		keywords: []string{"创新", "叛逆", "表现", "聪明"},
		positive: "聪明伶俐、才思敏捷、创新能力强、表现欲强",
		negative: "恃才傲物、尖酸刻薄、叛逆不羁、口舌是非",
		career:   "适合艺术、法律、技术创新、演艺等",
	},
	IndirectWealth: {
		keywords: []string{"灵活", "社交", "横财", "慷慨"},
		positive: "善于理财、人缘极好、慷慨大方、机会多",
		negative: "贪婪浮躁、投机取巧、感情不专、易破财",
		career:   "适合商业、金融、贸易、娱乐业等",
	},
	DirectWealth: {
		keywords: []string{"稳健", "节俭", "务实", "守财"},
		positive: "勤俭持家、踏实可靠、理财有道、重视家庭",
		negative: "过于保守、小气吝啬、缺乏魄力、患得患失",
		career:   "适合会计、银行、实业经营等",
	},
	SevenKillings: {
		keywords: []string{"魄力", "权威", "果断", "压力"},
		positive: "有魄力、敢担当、决断力强、有领导才能",
		negative: "性格暴躁、压力大、易招是非、专制霸道",
		career:   "适合军警、管理层、外科医生等",
	},
	DirectOfficer: {
		keywords: []string{"正派", "规矩", "责任", "稳重"},
		positive: "品行端正、守规矩、有责任感、稳重可靠",
		negative: "过于刻板、胆小怕事、缺乏变通、压力敏感",
		career:   "适合公务员、管理、法律、教育等",
	},
	IndirectResource: {
		keywords: []string{"独特", "孤僻", "灵感", "偏门"},
		positive: "思维独特、有灵感、适合偏门学问、悟性高",
		negative: "性格孤僻、多疑敏感、不善交际、想法极端",
		career:   "适合宗教、命理、医学、研究等",
	},
	DirectResource: {
		keywords: []string{"学识", "仁慈", "保守", "贵人"},
		positive: "学识渊博、心地善良、有贵人相助、受人尊敬",
		negative: "过于依赖、缺乏主见、保守固执、懒惰",
		career:   "适合教育、学术研究、慈善、文化等",
	},
}

var groupSummaries = [...]string{
	GroupPeer:      "属于比劫旺的格局，独立自主，有进取心。",
	GroupOutput:    "属于食伤旺的格局，才华出众，富有创意。",
	GroupWealth:    "属于财星旺的格局，善于理财，务实勤劳。",
	GroupAuthority: "属于官杀旺的格局，有责任感，事业心强。",
	GroupResource:  "属于印星旺的格局，学识渊博，有贵人运。",
}

// Personality is the trait reading of the dominant roles.
type Personality struct {
	Dominant          []Count  `json:"dominant"`
	Keywords          []string `json:"keywords"`
	PositiveTraits    []string `json:"positiveTraits"`
	NegativeTraits    []string `json:"negativeTraits"`
	CareerSuggestions []string `json:"careerSuggestions"`
	Summary           string   `json:"summary"`
}

// Personality reads the traits of the dominant roles. A tally without any
// role yields an empty reading.
func (t Tally) Personality() Personality {
	dominant := t.Dominant()
	p := Personality{
		Dominant:          dominant,
		Keywords:          []string{},
		PositiveTraits:    []string{},
		NegativeTraits:    []string{},
		CareerSuggestions: []string{},
	}
	if len(dominant) == 0 {
		return p
	}

	for _, c := range dominant {
		tr := roleTraits[c.Role]
		p.Keywords = append(p.Keywords, tr.keywords...)
		p.PositiveTraits = append(p.PositiveTraits, tr.positive)
		p.NegativeTraits = append(p.NegativeTraits, tr.negative)
		p.CareerSuggestions = append(p.CareerSuggestions, tr.career)
	}
	p.Keywords = lo.Uniq(p.Keywords)

	top := dominant[0].Role
	p.Summary = fmt.Sprintf("您的八字以%s为主导，%s", top, groupSummaries[top.Group()])
	return p
}

// Keywords returns the trait keywords of the role.
func (r Role) Keywords() []string {
	return append([]string(nil), roleTraits[r.must()].keywords...)
}

// Positive returns the positive trait line of the role.
func (r Role) Positive() string {
	return roleTraits[r.must()].positive
}
