package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/offer-fe/offer-be/internal/domain"
	"github.com/offer-fe/offer-be/pkg/errs"
	"github.com/rs/zerolog/log"
)

type MemberRepositoryImpl struct {
	db *sqlx.DB
}

func CreateMemberRepository(db *sqlx.DB) MemberRepository {
	return &MemberRepositoryImpl{db: db}
}

func (r *MemberRepositoryImpl) GetMemberByPrincipal(ctx context.Context, principal string) (data domain.Member, err error) {
	err = r.db.GetContext(ctx, &data, r.db.Rebind("SELECT * FROM members WHERE principal = ?"), principal)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Member{}, nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetMemberByPrincipal").Msg("")
		return
	}

	return
}

func (r *MemberRepositoryImpl) GetMemberByID(ctx context.Context, id int64) (data domain.Member, err error) {
	err = r.db.GetContext(ctx, &data, r.db.Rebind("SELECT * FROM members WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Member{}, nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetMemberByID").Msg("")
		return
	}

	return
}

func (r *MemberRepositoryImpl) ExistsByPrincipal(ctx context.Context, principal string) (exists bool, err error) {
	var count int64
	err = r.db.GetContext(ctx, &count, r.db.Rebind("SELECT COUNT(id) FROM members WHERE principal = ?"), principal)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ExistsByPrincipal").Msg("")
		return false, err
	}

	return count > 0, nil
}

func (r *MemberRepositoryImpl) AddMember(ctx context.Context, data domain.Member) (id int64, err error) {
	timestamp := time.Now().UnixMilli()
	data.CreatedAt = timestamp
	data.UpdatedAt = timestamp

	query, args, err := r.db.BindNamed("INSERT INTO members(principal, external_id, nickname, address, profile_image, hashed_password, apple_level, provider, provider_id, created_at, updated_at) VALUES (:principal, :external_id, :nickname, :address, :profile_image, :hashed_password, :apple_level, :provider, :provider_id, :created_at, :updated_at) RETURNING id", data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddMember").Msg("")
		return
	}

	err = r.db.GetContext(ctx, &id, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, errs.ErrMemberAlreadyExists
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "AddMember").Msg("")
		return
	}

	return id, nil
}

// isUniqueViolation matches the postgres unique_violation code and the
// equivalent sqlite constraint message.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *MemberRepositoryImpl) UpdateMemberProfile(ctx context.Context, data domain.Member) (err error) {
	data.UpdatedAt = time.Now().UnixMilli()

	_, err = r.db.NamedExecContext(ctx, "UPDATE members SET nickname=:nickname, address=:address, profile_image=:profile_image, updated_at=:updated_at WHERE id=:id", data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateMemberProfile").Msg("")
		return
	}

	return nil
}
