package auth

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"hkts-backend/internal/audit"
	"hkts-backend/internal/config"
	"hkts-backend/internal/database"
	"hkts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string          `json:"username"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

type RegisterRequest struct {
	Username string          `json:"username"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

type ResetPasswordRequest struct {
	Username string `json:"username"`
}

// POST /api/auth/login
// Giriş tipi (admin/security) kayıtlı rolle eşleşmek zorunda; bu bir UX
// kısıtıdır, yetkilendirme her zaman kayıtlı role göre yapılır.
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(body.Username)

		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı ve şifre zorunlu")
		}
		if !body.Role.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rol (admin|security)")
		}

		// Bilinmeyen kullanıcı ve yanlış şifre aynı mesajı döner; hesap var/yok
		// bilgisi dışarı sızdırılmaz. Sadece rol uyuşmazlığı ayrı bildirilir.
		var user models.User
		if err := database.DB.Where("username = ?", body.Username).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı adı veya şifre hatalı")
		}

		if user.Role != body.Role {
			return fiber.NewError(fiber.StatusUnauthorized, "Rol uyuşmuyor. Doğru giriş tipini seçin.")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı adı veya şifre hatalı")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		audit.WriteLog(audit.LogOptions{
			UserID:      user.ID,
			Username:    user.Username,
			EntityType:  "user",
			EntityID:    user.ID,
			Action:      models.AuditActionLogin,
			Description: "Giriş yapıldı",
		})

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":       user.ID,
				"username": user.Username,
				"role":     user.Role,
			},
		})
	}
}

// POST /api/auth/register
func RegisterHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(body.Username)

		if utf8.RuneCountInString(body.Username) < 3 || utf8.RuneCountInString(body.Password) < 6 {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı en az 3, şifre en az 6 karakter olmalı")
		}
		if !body.Role.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rol (admin|security)")
		}

		var count int64
		database.DB.Model(&models.User{}).
			Where("username = ?", body.Username).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu kullanıcı adı zaten kayıtlı")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		user := models.User{
			Username:     body.Username,
			PasswordHash: string(hash),
			Role:         body.Role,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt alınamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		})
	}
}

// POST /api/auth/reset-password
// Geçici şifre bir kez düz metin döner, hiçbir yerde düz metin saklanmaz.
func ResetPasswordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ResetPasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı zorunlu")
		}

		var user models.User
		if err := database.DB.Where("username = ?", body.Username).First(&user).Error; err != nil {
			// Hesap var/yok bilgisini sızdırmamak için genel mesaj
			return fiber.NewError(fiber.StatusBadRequest, "Şifre sıfırlanamadı")
		}

		temp := "Sifirla_" + time.Now().Format("150405")

		hash, err := bcrypt.GenerateFromPassword([]byte(temp), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		if err := database.DB.Model(&models.User{}).
			Where("id = ?", user.ID).
			Update("password_hash", string(hash)).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre sıfırlanamadı")
		}

		audit.WriteLog(audit.LogOptions{
			UserID:      user.ID,
			Username:    user.Username,
			EntityType:  "user",
			EntityID:    user.ID,
			Action:      models.AuditActionPasswordReset,
			Description: "Geçici şifre oluşturuldu",
		})

		return c.JSON(fiber.Map{
			"temp_password": temp,
			"message":       fmt.Sprintf("Geçici şifre: %s", temp),
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, username, role, err := CurrentUser(c)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"user_id":  userID,
			"username": username,
			"role":     role,
		})
	}
}
