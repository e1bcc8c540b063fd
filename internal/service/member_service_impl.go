package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/offer-fe/offer-be/config"
	"github.com/offer-fe/offer-be/internal/domain"
	"github.com/offer-fe/offer-be/internal/dto"
	objectstorage "github.com/offer-fe/offer-be/internal/infrastructure/object-storage"
	"github.com/offer-fe/offer-be/internal/repository"
	"github.com/offer-fe/offer-be/pkg/errs"
	"github.com/offer-fe/offer-be/pkg/utils"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type MemberServiceImpl struct {
	repository repository.MemberRepository
	storage    objectstorage.Storage
	config     config.Config
}

func CreateMemberService(repository repository.MemberRepository, storage objectstorage.Storage, config config.Config) MemberService {
	return &MemberServiceImpl{
		repository: repository,
		storage:    storage,
		config:     config,
	}
}

func (s *MemberServiceImpl) Signup(ctx context.Context, req dto.MemberSignupRequest) (res dto.MemberResponse, err error) {
	exists, err := s.repository.ExistsByPrincipal(ctx, req.Email)
	if err != nil {
		return res, err
	}
	if exists {
		return res, errs.ErrMemberAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Signup").Msg("")
		return res, fmt.Errorf("hashing password: %w", err)
	}
	hashed := string(hashedPassword)

	member := domain.Member{
		Principal:      req.Email,
		ExternalID:     ulid.Make().String(),
		Nickname:       req.Nickname,
		Address:        req.Address,
		HashedPassword: &hashed,
		AppleLevel:     domain.InitialAppleLevel,
	}

	member.ID, err = s.repository.AddMember(ctx, member)
	if err != nil {
		return res, err
	}

	return toMemberResponse(member), nil
}

func (s *MemberServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	member, err := resolveMember(ctx, s.repository, req.Email)
	if err != nil {
		return res, err
	}

	if member.HashedPassword == nil {
		return res, errs.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(*member.HashedPassword), []byte(req.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return res, errs.ErrInvalidCredentials
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "Login").Msg("")
		return res, err
	}

	ttl := time.Duration(s.config.JWTConfig.JWTExpirationHours) * time.Hour
	token, err := utils.CreateJWTToken(member.ID, member.Principal, member.ExternalID, s.config.JWTConfig.JWTSecret, ttl)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Login").Msg("")
		return res, err
	}

	return dto.LoginResponse{
		Token:  token,
		Member: toMemberResponse(member),
	}, nil
}

func (s *MemberServiceImpl) IsDuplicate(ctx context.Context, email string) (res dto.DuplicateResponse, err error) {
	exists, err := s.repository.ExistsByPrincipal(ctx, email)
	if err != nil {
		return res, err
	}

	return dto.DuplicateResponse{IsDuplicate: exists}, nil
}

func (s *MemberServiceImpl) GetMyProfile(ctx context.Context, auth dto.Authentication) (res dto.MemberResponse, err error) {
	member, err := resolveMember(ctx, s.repository, auth.LoginID)
	if err != nil {
		return res, err
	}

	return toMemberResponse(member), nil
}

func (s *MemberServiceImpl) UpdateMyProfile(ctx context.Context, req dto.MemberProfileUpdateRequest, auth dto.Authentication) (res dto.MemberResponse, err error) {
	member, err := resolveMember(ctx, s.repository, auth.LoginID)
	if err != nil {
		return res, err
	}

	member.Nickname = req.Nickname
	member.Address = req.Address
	member.ProfileImage = nil
	if req.ProfileImageURL != nil && *req.ProfileImageURL != "" {
		member.ProfileImage = req.ProfileImageURL
	}

	if err := s.repository.UpdateMemberProfile(ctx, member); err != nil {
		return res, err
	}

	return toMemberResponse(member), nil
}

func (s *MemberServiceImpl) UploadProfileImage(ctx context.Context, file dto.ImageFile) (res dto.ImageURLsResponse, err error) {
	urls, err := uploadSequentially(ctx, s.storage, []dto.ImageFile{file}, s.config.ArticleConfig.ProfileImgDir)
	if err != nil {
		return res, err
	}

	return dto.ImageURLsResponse{ImageURLs: urls}, nil
}
