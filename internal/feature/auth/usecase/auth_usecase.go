// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"courier_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// bcryptCost はパスワードハッシュのコストファクターを定義します。
	bcryptCost = 10

	// sessionTTL はログインセッションの有効期間を定義します。
	sessionTTL = 7 * 24 * time.Hour
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、エラーを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、エラーを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、エラーを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// List は登録日の新しい順に全ユーザーを返します。
	List(ctx context.Context) ([]*entity.User, error)
}

// RegisterInput は新規登録フォームの入力値です。
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	LastName string
	Document string
	Phone    string
	Address  string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users UserRepository
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository) *authUsecase {
	return &authUsecase{users: users}
}

// validateRegisterInput は必須項目がすべて入力されているかチェックします。
func validateRegisterInput(in RegisterInput) error {
	for _, v := range []string{in.Email, in.Password, in.Name, in.LastName, in.Document} {
		if strings.TrimSpace(v) == "" {
			return ErrMissingFields
		}
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
// 自己登録のロールは常にCLIENTです。
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) error {
	if err := validateRegisterInput(in); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		Email:    in.Email,
		Password: string(hashed),
		Name:     in.Name,
		LastName: in.LastName,
		Document: in.Document,
		Phone:    in.Phone,
		Address:  in.Address,
		Role:     entity.RoleClient,
	}
	return u.users.Create(ctx, user)
}

// Login はユーザーを認証し、成功時に7日間有効なセッションクレームを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.Session, error) {
	user, err := u.users.FindByEmail(ctx, email)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、同一の汎用エラーを返す
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return &entity.Session{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		LastName:  user.LastName,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(sessionTTL),
	}, nil
}

// AdminLogin は管理者ログインを処理します。認証に成功しても
// ロールがADMINでなければ、存在の有無を漏らさないよう同じ汎用エラーを返します。
func (u *authUsecase) AdminLogin(ctx context.Context, email, password string) (*entity.Session, error) {
	session, err := u.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if session.Role != entity.RoleAdmin {
		return nil, ErrInvalidCredentials
	}
	return session, nil
}

// GetUser はIDでユーザーを取得します（プロフィール表示用）。
func (u *authUsecase) GetUser(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// ListUsers は管理画面向けに全ユーザーを返します。
func (u *authUsecase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return u.users.List(ctx)
}

// CreateUser は管理者によるユーザー作成を処理します。
// 自己登録と異なりロールを指定できます（ADMINの帯域外プロビジョニング）。
func (u *authUsecase) CreateUser(ctx context.Context, in RegisterInput, role entity.Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	if err := validateRegisterInput(in); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		Email:    in.Email,
		Password: string(hashed),
		Name:     in.Name,
		LastName: in.LastName,
		Document: in.Document,
		Phone:    in.Phone,
		Address:  in.Address,
		Role:     role,
	}
	return u.users.Create(ctx, user)
}

// IsNotFound はエラーがユーザー未検出かどうかを報告します。
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}
