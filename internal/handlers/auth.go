package handlers

import (
	"net/http"
	"strings"

	"perfopoints/internal/db"
	"perfopoints/internal/models"
	"perfopoints/internal/services"
	"perfopoints/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	captchaService *services.CaptchaService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		captchaService: services.NewCaptchaService(),
	}
}

// Captcha 下发算术验证码，答案存 session
func (h *AuthHandler) Captcha(c *gin.Context) {
	question, answer := h.captchaService.GenerateMathProblem()
	session := sessions.Default(c)
	session.Set("captcha_answer", answer)
	session.Save()
	OK(c, gin.H{"captcha": question})
}

type registerForm struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Captcha  string `json:"captcha" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		Fail(c, http.StatusBadRequest, "参数不完整或邮箱格式不正确")
		return
	}

	// Validate Captcha
	session := sessions.Default(c)
	expectedAnswer, ok := session.Get("captcha_answer").(int)
	if !ok || utils.StringToInt(form.Captcha) != expectedAnswer {
		Fail(c, http.StatusBadRequest, "验证码错误")
		return
	}
	// Clear captcha after use
	session.Delete("captcha_answer")
	session.Save()

	if len(form.Password) < 6 {
		Fail(c, http.StatusBadRequest, "密码至少6位")
		return
	}

	// 未填用户名时取邮箱前缀
	username := form.Username
	if username == "" {
		username = strings.Split(form.Email, "@")[0]
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		Fail(c, http.StatusInternalServerError, "系统错误")
		return
	}

	user := models.User{
		Username: username,
		Email:    form.Email,
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		Fail(c, http.StatusConflict, "邮箱已注册")
		return
	}

	// Send Activation Email
	code := utils.GenerateRandomCode(6)
	user.VerifyCode = code
	db.DB.Save(&user)
	services.GetMailService().SendWelcomeEmail(form.Email, code)

	OK(c, gin.H{"message": "注册成功！激活码已发送至您的邮箱。"})
}

type activateForm struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

func (h *AuthHandler) Activate(c *gin.Context) {
	var form activateForm
	if err := c.ShouldBindJSON(&form); err != nil {
		Fail(c, http.StatusBadRequest, "参数不完整")
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", form.Email).First(&user).Error; err != nil {
		Fail(c, http.StatusBadRequest, "用户不存在")
		return
	}

	if user.IsActivated {
		OK(c, gin.H{"message": "账号已激活，请登录"})
		return
	}

	if user.VerifyCode != form.Code {
		Fail(c, http.StatusBadRequest, "激活码错误")
		return
	}

	user.IsActivated = true
	user.VerifyCode = "" // 清除验证码
	db.DB.Save(&user)

	// 激活成功后自动登录
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	OK(c, gin.H{"message": "激活成功", "user": user})
}

type loginForm struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		Fail(c, http.StatusBadRequest, "参数不完整")
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", form.Email).First(&user).Error; err != nil {
		Fail(c, http.StatusUnauthorized, "邮箱或密码错误")
		return
	}

	if !utils.CheckPasswordHash(form.Password, user.Password) {
		Fail(c, http.StatusUnauthorized, "邮箱或密码错误")
		return
	}

	// 检查用户是否被封禁
	if user.IsBlocked() {
		Fail(c, http.StatusForbidden, "您的账号已被封禁，无法登录。")
		return
	}

	// 检查未激活
	if !user.IsActivated {
		Fail(c, http.StatusUnauthorized, "账号未激活，请输入激活码")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	OK(c, gin.H{"user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	OK(c, nil)
}

type forgotPasswordForm struct {
	Email   string `json:"email" binding:"required,email"`
	Captcha string `json:"captcha" binding:"required"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var form forgotPasswordForm
	if err := c.ShouldBindJSON(&form); err != nil {
		Fail(c, http.StatusBadRequest, "参数不完整")
		return
	}

	session := sessions.Default(c)
	expectedAnswer, ok := session.Get("captcha_answer").(int)
	if !ok || utils.StringToInt(form.Captcha) != expectedAnswer {
		Fail(c, http.StatusBadRequest, "验证码错误")
		return
	}
	session.Delete("captcha_answer")
	session.Save()

	var user models.User
	if err := db.DB.Where("email = ?", form.Email).First(&user).Error; err != nil {
		// 不暴露账号是否存在
		OK(c, gin.H{"message": "如果邮箱存在，验证码已发送。"})
		return
	}

	code := utils.GenerateRandomCode(6)
	user.VerifyCode = code
	db.DB.Save(&user)
	services.GetMailService().SendPasswordResetEmail(form.Email, code)

	OK(c, gin.H{"message": "如果邮箱存在，验证码已发送。"})
}

type resetPasswordForm struct {
	Email    string `json:"email" binding:"required,email"`
	Code     string `json:"code" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var form resetPasswordForm
	if err := c.ShouldBindJSON(&form); err != nil {
		Fail(c, http.StatusBadRequest, "参数不完整")
		return
	}

	if len(form.Password) < 6 {
		Fail(c, http.StatusBadRequest, "密码至少6位")
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", form.Email).First(&user).Error; err != nil {
		Fail(c, http.StatusBadRequest, "用户不存在")
		return
	}

	if user.VerifyCode == "" || user.VerifyCode != form.Code {
		Fail(c, http.StatusBadRequest, "验证码错误或已失效")
		return
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		Fail(c, http.StatusInternalServerError, "系统错误")
		return
	}
	user.Password = hash
	user.VerifyCode = "" // Clear code
	db.DB.Save(&user)

	OK(c, gin.H{"message": "密码重置成功，请登录"})
}
