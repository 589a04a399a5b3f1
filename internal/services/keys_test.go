package services

import (
	"testing"

	"perfopoints/internal/models"
)

func TestHasRequiredKeysEmptyRequirements(t *testing.T) {
	// 没有钥匙需求时恒为 true，即使库存为空
	if !HasRequiredKeys(map[string]int{}, nil) {
		t.Error("empty requirements should always pass")
	}
}

func TestHasRequiredKeys(t *testing.T) {
	inventory := map[string]int{
		models.KeyTypeCopper: 2,
		models.KeyTypeGolden: 1,
	}

	cases := []struct {
		name         string
		requirements []models.RewardKeyRequirement
		want         bool
	}{
		{
			"刚好够",
			[]models.RewardKeyRequirement{{KeyType: models.KeyTypeCopper, Quantity: 2}},
			true,
		},
		{
			"数量不足",
			[]models.RewardKeyRequirement{{KeyType: models.KeyTypeCopper, Quantity: 3}},
			false,
		},
		{
			"完全没持有的类型",
			[]models.RewardKeyRequirement{{KeyType: models.KeyTypeRuby, Quantity: 1}},
			false,
		},
		{
			"多条需求有一条不满足就整体失败",
			[]models.RewardKeyRequirement{
				{KeyType: models.KeyTypeCopper, Quantity: 1},
				{KeyType: models.KeyTypeGolden, Quantity: 2},
			},
			false,
		},
		{
			"多条需求全部满足",
			[]models.RewardKeyRequirement{
				{KeyType: models.KeyTypeCopper, Quantity: 2},
				{KeyType: models.KeyTypeGolden, Quantity: 1},
			},
			true,
		},
	}

	for _, c := range cases {
		if got := HasRequiredKeys(inventory, c.requirements); got != c.want {
			t.Errorf("%s: HasRequiredKeys = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestHasRequiredKeysAfterGift(t *testing.T) {
	// 持有 2 把铜钥匙，需求 4 把，不满足；补发 2 把后满足
	inventory := map[string]int{models.KeyTypeCopper: 2}
	requirements := []models.RewardKeyRequirement{{KeyType: models.KeyTypeCopper, Quantity: 4}}

	if HasRequiredKeys(inventory, requirements) {
		t.Error("2 copper keys should not satisfy a requirement of 4")
	}

	inventory[models.KeyTypeCopper] += 2
	if !HasRequiredKeys(inventory, requirements) {
		t.Error("4 copper keys should satisfy a requirement of 4")
	}
}

func TestIsValidKeyType(t *testing.T) {
	for _, meta := range models.KeyTypes {
		if !models.IsValidKeyType(meta.Type) {
			t.Errorf("IsValidKeyType(%s) = false", meta.Type)
		}
	}
	if models.IsValidKeyType("wooden") {
		t.Error("IsValidKeyType(wooden) should be false")
	}
}
