package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

var (
	mailService *MailService
	mailOnce    sync.Once
)

// GetMailService 获取单例邮件服务
func GetMailService() *MailService {
	mailOnce.Do(func() {
		mailService = NewMailService()
	})
	return mailService
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")

	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		log.Println("⚠️ MailService disabled: Missing SMTP environment variables.")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		Enabled:  enabled,
	}
}

func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
		addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

		mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: Perfo Points <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

		err := smtp.SendMail(addr, auth, s.From, to, msg)
		if err != nil {
			log.Printf("❌ Failed to send email to %v: %v", to, err)
		} else {
			log.Printf("✅ Email sent to %v: %s", to, subject)
		}
	}()
}

func (s *MailService) parseTemplate(templateName string, data interface{}) (string, error) {
	// Assuming templates are in "web/templates/email/"
	path := filepath.Join("web", "templates", "email", templateName)
	t, err := template.ParseFiles(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}
	return buf.String(), nil
}

// SendWelcomeEmail 注册后发送激活码
func (s *MailService) SendWelcomeEmail(email, code string) {
	body, err := s.parseTemplate("welcome.html", map[string]string{
		"Code": code,
	})
	if err != nil {
		log.Printf("Error rendering welcome email: %v", err)
		return
	}
	s.sendAsync([]string{email}, "欢迎加入 Perfo Points，请验证您的邮箱", body)
}

// SendPasswordResetEmail 发送重置密码验证码
func (s *MailService) SendPasswordResetEmail(email, code string) {
	body, err := s.parseTemplate("reset.html", map[string]string{
		"Code": code,
	})
	if err != nil {
		log.Printf("Error rendering reset email: %v", err)
		return
	}
	s.sendAsync([]string{email}, "[Perfo Points] 安全提醒：您正在申请重置密码", body)
}

// SendRequestReviewedEmail 积分申请审核结果通知
func (s *MailService) SendRequestReviewedEmail(email, taskTitle string, approved bool) {
	result := "已通过 🎉"
	if !approved {
		result = "未通过"
	}
	body, err := s.parseTemplate("review.html", map[string]string{
		"TaskTitle": taskTitle,
		"Result":    result,
	})
	if err != nil {
		log.Printf("Error rendering review email: %v", err)
		return
	}
	s.sendAsync([]string{email}, fmt.Sprintf("📋 [审核结果] 你完成「%s」的申请%s", taskTitle, result), body)
}
