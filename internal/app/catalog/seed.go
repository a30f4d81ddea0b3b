package catalog

import (
	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/shopspring/decimal"
)

const imageBase = "https://space.coze.cn/api/coze_space/gen_image?image_size=square&prompt="

// DefaultMenu is served until the catalog is first written.
func DefaultMenu() []domain.MenuItem {
	return []domain.MenuItem{
		{
			ID:          "dish-001",
			Name:        "宫保鸡丁",
			Description: "传统川菜，鸡肉鲜嫩，花生香脆，微辣可口",
			Price:       decimal.NewFromInt(48),
			Image:       imageBase + "Kung%20Pao%20Chicken%20Chinese%20food%20dish%20photo",
			Category:    "热菜",
			Popular:     true,
			Tags:        []string{"川菜", "招牌"},
			Available:   true,
		},
		{
			ID:          "dish-002",
			Name:        "鱼香肉丝",
			Description: "经典川菜，肉丝滑嫩，配菜丰富，酸甜可口",
			Price:       decimal.NewFromInt(42),
			Image:       imageBase + "Yuxiang%20Shredded%20Pork%20Chinese%20food%20dish%20photo",
			Category:    "热菜",
			Tags:        []string{"川菜"},
			Available:   true,
		},
		{
			ID:          "dish-003",
			Name:        "北京烤鸭",
			Description: "招牌菜，皮脆肉嫩，搭配葱丝、黄瓜和甜面酱",
			Price:       decimal.NewFromInt(168),
			Image:       imageBase + "Peking%20Duck%20Chinese%20food%20dish%20photo",
			Category:    "招牌菜",
			Popular:     true,
			Tags:        []string{"北京菜", "招牌"},
			Available:   true,
		},
		{
			ID:          "dish-004",
			Name:        "蒜蓉西兰花",
			Description: "清爽素菜，西兰花脆嫩，蒜香浓郁",
			Price:       decimal.NewFromInt(32),
			Image:       imageBase + "Garlic%20Broccoli%20Chinese%20food%20dish%20photo",
			Category:    "素菜",
			Tags:        []string{"健康", "素食"},
			Available:   true,
		},
		{
			ID:          "dish-005",
			Name:        "担担面",
			Description: "四川传统面食，麻辣鲜香，面条劲道",
			Price:       decimal.NewFromInt(28),
			Image:       imageBase + "Dan%20Dan%20Noodles%20Chinese%20food%20dish%20photo",
			Category:    "主食",
			Tags:        []string{"川菜", "面食"},
			Available:   true,
		},
		{
			ID:          "dish-006",
			Name:        "水果拼盘",
			Description: "新鲜时令水果，营养丰富，清爽解腻",
			Price:       decimal.NewFromInt(38),
			Image:       imageBase + "Fruit%20Platter%20Chinese%20food%20dish%20photo",
			Category:    "甜品",
			Tags:        []string{"健康", "甜品"},
			Available:   true,
		},
	}
}
