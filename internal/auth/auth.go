package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sl "careerpath/internal/lib/logger/sl"
	"careerpath/internal/lib/password"
	"careerpath/internal/models"
	"careerpath/internal/storage"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidPassword    = errors.New("password cannot be hashed")
)

const welcomeSubject = "Welcome to CareerPath"

type Auth struct {
	log         *slog.Logger
	accSaver    AccountSaver
	accProvider AccountProvider
	signIns     SignInRecorder
	hasher      PasswordHasher
	tokens      TokenIssuer
	publisher   Publisher
	now         func() time.Time
}

type AccountSaver interface {
	SaveAccount(
		ctx context.Context,
		name, email string,
		passHash []byte,
		confirm func(models.Account) error,
	) (models.Account, error)
}

type AccountProvider interface {
	AccountByEmail(ctx context.Context, email string) (models.Account, error)
	AccountByID(ctx context.Context, id int64) (models.Account, error)
}

type SignInRecorder interface {
	SaveSignIn(ctx context.Context, userID int64, email string, at time.Time) error
}

type PasswordHasher interface {
	Hash(plain string) ([]byte, error)
	Verify(plain string, hash []byte) bool
}

type TokenIssuer interface {
	Issue(acc models.Account) (string, error)
}

type Publisher interface {
	SendMessage(ctx context.Context, msg models.Message) error
}

// Session is the result of a successful sign-up or login.
type Session struct {
	Token   string
	Account models.PublicAccount
}

func New(
	log *slog.Logger,
	accSaver AccountSaver,
	accProvider AccountProvider,
	signIns SignInRecorder,
	hasher PasswordHasher,
	tokens TokenIssuer,
	publisher Publisher,
) *Auth {
	return &Auth{
		log:         log,
		accSaver:    accSaver,
		accProvider: accProvider,
		signIns:     signIns,
		hasher:      hasher,
		tokens:      tokens,
		publisher:   publisher,
		now:         time.Now,
	}
}

// NormalizeEmail is applied before every store access, so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// * SignUp creates the account and its first token. The token is issued inside
// * the store transaction, so a signing failure leaves no account behind.
func (a *Auth) SignUp(ctx context.Context, name, email, pass string) (Session, error) {
	const op = "auth.SignUp"

	log := a.log.With(
		slog.String("op", op),
	)

	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)

	_, err := a.accProvider.AccountByEmail(ctx, email)
	switch {
	case err == nil:
		log.Warn("email already registered")

		return Session{}, fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
	case !errors.Is(err, storage.ErrAccountNotFound):
		log.Error("failed to check email", sl.Err(err))

		return Session{}, fmt.Errorf("%s: %w", op, err)
	}

	passHash, err := a.hasher.Hash(pass)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			log.Info("password exceeds hash input limit")

			return Session{}, fmt.Errorf("%s: %w", op, ErrInvalidPassword)
		}

		log.Error("failed to generate password hash", sl.Err(err))

		return Session{}, fmt.Errorf("%s: %w", op, err)
	}

	var token string

	acc, err := a.accSaver.SaveAccount(ctx, name, email, passHash, func(acc models.Account) error {
		var err error
		token, err = a.tokens.Issue(acc)

		return err
	})
	if err != nil {
		if errors.Is(err, storage.ErrAccountExists) {
			log.Warn("email already registered")

			return Session{}, fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
		}

		log.Error("failed to save account", sl.Err(err))

		return Session{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("account registered", slog.Int64("uid", acc.ID))

	a.announce(ctx, log, acc)

	return Session{Token: token, Account: acc.Public()}, nil
}

// Login never tells the caller whether the email exists.
func (a *Auth) Login(ctx context.Context, email, pass string) (Session, error) {
	const op = "auth.Login"

	log := a.log.With(
		slog.String("op", op),
	)

	email = NormalizeEmail(email)

	acc, err := a.accProvider.AccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			log.Info("invalid credentials")

			return Session{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		log.Error("failed to get account", sl.Err(err))

		return Session{}, fmt.Errorf("%s: %w", op, err)
	}

	if !a.hasher.Verify(pass, acc.PassHash) {
		log.Info("invalid credentials", slog.Int64("uid", acc.ID))

		return Session{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := a.tokens.Issue(acc)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return Session{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := a.signIns.SaveSignIn(ctx, acc.ID, acc.Email, a.now().UTC()); err != nil {
		log.Warn("failed to record sign-in", sl.Err(err))
	}

	log.Info("account logged in successfully", slog.Int64("uid", acc.ID))

	return Session{Token: token, Account: acc.Public()}, nil
}

func (a *Auth) WhoAmI(ctx context.Context, uid int64) (models.PublicAccount, error) {
	const op = "auth.WhoAmI"

	acc, err := a.accProvider.AccountByID(ctx, uid)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			return models.PublicAccount{}, fmt.Errorf("%s: %w", op, ErrAccountNotFound)
		}

		a.log.Error("failed to get account", slog.String("op", op), sl.Err(err))

		return models.PublicAccount{}, fmt.Errorf("%s: %w", op, err)
	}

	return acc.Public(), nil
}

// announce publishes the welcome message. Failures are logged and swallowed:
// the account is already committed.
func (a *Auth) announce(ctx context.Context, log *slog.Logger, acc models.Account) {
	msg := models.Message{
		Email:   acc.Email,
		Name:    acc.Name,
		Subject: welcomeSubject,
		Purpose: "welcome",
	}

	if err := a.publisher.SendMessage(ctx, msg); err != nil {
		log.Warn("failed to publish welcome message", sl.Err(err))
	}
}
