package usecase

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"io"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"messenger-api/entity"
	"messenger-api/enum"
	"messenger-api/repository"
	"messenger-api/security"
	"messenger-api/util"
)

// newTestDB opens an in-memory database with the same naming strategy as
// the real one, so raw joins against t_chat_member resolve.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "t_",
			SingularTable: true,
		},
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Chat{},
		&entity.ChatMember{},
		&entity.Message{},
		&entity.MessageReaction{},
	)
	require.NoError(t, err)

	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestJWT(t *testing.T) *security.JWT {
	t.Helper()

	accessKey, err := ecdsa.GenerateKey(elliptic.P521(), rand.Reader)
	require.NoError(t, err)
	refreshKey, err := ecdsa.GenerateKey(elliptic.P521(), rand.Reader)
	require.NoError(t, err)

	return security.NewJWTFromKeys(accessKey, refreshKey, 15*time.Minute, 7*24*time.Hour)
}

type fixture struct {
	db       *gorm.DB
	auth     AuthUsecase
	users    UserUsecase
	chats    ChatUsecase
	messages MessageUsecase
	jwt      *security.JWT
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	log := newTestLogger()
	validate := validator.New(validator.WithRequiredStructEnabled())
	jwtSecurity := newTestJWT(t)

	userRepository := repository.NewUserRepository()
	chatRepository := repository.NewChatRepository()
	messageRepository := repository.NewMessageRepository()

	return &fixture{
		db:       db,
		auth:     NewAuthUsecase(userRepository, validate, db, log, jwtSecurity),
		users:    NewUserUsecase(userRepository, validate, db, log),
		chats:    NewChatUsecase(chatRepository, userRepository, validate, db, log),
		messages: NewMessageUsecase(messageRepository, chatRepository, validate, db, log),
		jwt:      jwtSecurity,
	}
}

// seedUser inserts a user directly, bypassing the signup flow.
func (f *fixture) seedUser(t *testing.T, firstName, email string) entity.User {
	t.Helper()

	hashed, err := util.HashPassword("secret-password")
	require.NoError(t, err)

	user := entity.User{
		FirstName: firstName,
		LastName:  "Tester",
		Email:     email,
		Password:  hashed,
		Role:      enum.RoleUser,
	}
	require.NoError(t, f.db.Create(&user).Error)
	return user
}

func strPtr(s string) *string {
	return &s
}

func testCtx() context.Context {
	return context.Background()
}
