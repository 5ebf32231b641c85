package elemental

import (
	"fmt"

	"xuanxin.dev/backend-next/internal/core/cycle"
)

// Advisory lists the static associations of an element.
type Advisory struct {
	Element    cycle.Element `json:"element"`
	Colors     []string      `json:"colors"`
	Direction  string        `json:"direction"`
	Numbers    []int         `json:"numbers"`
	Industries []string      `json:"industries"`
}

var advisories = [cycle.ElementCount]Advisory{
	cycle.Wood: {
		Element:    cycle.Wood,
		Colors:     []string{"绿色", "青色", "翠色"},
		Direction:  "东方",
		Numbers:    []int{3, 8},
		Industries: []string{"教育", "出版", "文化", "医疗", "园艺", "家具", "服装", "木材"},
	},
	cycle.Fire: {
		Element:    cycle.Fire,
		Colors:     []string{"红色", "紫色", "粉色"},
		Direction:  "南方",
		Numbers:    []int{2, 7},
		Industries: []string{"电子", "能源", "餐饮", "娱乐", "传媒", "化工", "照明", "美容"},
	},
	cycle.Earth: {
		Element:    cycle.Earth,
		Colors:     []string{"黄色", "棕色", "咖啡色"},
		Direction:  "中央",
		Numbers:    []int{5, 10},
		Industries: []string{"房地产", "建筑", "农业", "矿业", "陶瓷", "仓储", "殡葬", "养殖"},
	},
	cycle.Metal: {
		Element:    cycle.Metal,
		Colors:     []string{"白色", "金色", "银色"},
		Direction:  "西方",
		Numbers:    []int{4, 9},
		Industries: []string{"金融", "机械", "珠宝", "汽车", "五金", "司法", "军警", "IT"},
	},
	cycle.Water: {
		Element:    cycle.Water,
		Colors:     []string{"黑色", "蓝色", "灰色"},
		Direction:  "北方",
		Numbers:    []int{1, 6},
		Industries: []string{"航运", "水产", "旅游", "物流", "贸易", "清洁", "酒店", "传播"},
	},
}

// AdvisoryFor returns a copy of the associations of e.
func AdvisoryFor(e cycle.Element) Advisory {
	a := advisories[e]
	a.Colors = append([]string(nil), a.Colors...)
	a.Numbers = append([]int(nil), a.Numbers...)
	a.Industries = append([]string(nil), a.Industries...)
	return a
}

// Summary renders the advisory as a single sentence.
func (a Advisory) Summary() string {
	return fmt.Sprintf("根据您的用神%s，建议多使用%s，发展方向宜往%s，幸运数字为%v。",
		a.Element, a.Colors[0], a.Direction, a.Numbers)
}
