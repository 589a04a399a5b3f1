package handlers

import (
	"net/http"

	"perfopoints/internal/services"

	"github.com/gin-gonic/gin"
)

type ImageHandler struct{}

func NewImageHandler() *ImageHandler {
	return &ImageHandler{}
}

// Upload 上传图片（任务凭证/头像），转存到图床后返回 URL
func (h *ImageHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		Fail(c, http.StatusBadRequest, "请选择要上传的图片")
		return
	}
	defer file.Close()

	result, err := services.UploadImage(file, header)
	if err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	OK(c, gin.H{"url": result.URL, "id": result.ID})
}
