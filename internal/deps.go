package internal

import (
	"github.com/Drwalbin/contacts-api/internal/service"
	"github.com/Drwalbin/contacts-api/pkg/security"

	"gorm.io/gorm"
)

type Deps struct {
	DB      *gorm.DB
	Argon   *security.ArgonHash
	Mailer  *service.Mailer
	Avatars *service.AvatarProcessor
}
