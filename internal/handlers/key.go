package handlers

import (
	"perfopoints/internal/models"
	"perfopoints/internal/services"

	"github.com/gin-gonic/gin"
)

type KeyHandler struct{}

func NewKeyHandler() *KeyHandler {
	return &KeyHandler{}
}

// MyKeys 我的钥匙库存，带展示信息。没持有的类型也返回，数量为 0
func (h *KeyHandler) MyKeys(c *gin.Context) {
	user := CurrentUser(c)
	inventory := services.KeyInventory(user.ID)

	type keyRow struct {
		models.KeyTypeMeta
		Quantity int `json:"quantity"`
	}
	keys := make([]keyRow, 0, len(models.KeyTypes))
	for _, meta := range models.KeyTypes {
		keys = append(keys, keyRow{KeyTypeMeta: meta, Quantity: inventory[meta.Type]})
	}

	OK(c, gin.H{"keys": keys})
}
