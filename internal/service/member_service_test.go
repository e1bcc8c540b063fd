package service

import (
	"context"
	"testing"

	"github.com/offer-fe/offer-be/config"
	"github.com/offer-fe/offer-be/internal/domain"
	"github.com/offer-fe/offer-be/internal/dto"
	"github.com/offer-fe/offer-be/internal/infrastructure/database/dbtest"
	"github.com/offer-fe/offer-be/internal/repository"
	"github.com/offer-fe/offer-be/pkg/errs"
	"github.com/offer-fe/offer-be/pkg/utils"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "member-service-secret"

type MemberServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    repository.MemberRepository
	storage *memoryStorage
	svc     MemberService
}

func (s *MemberServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = repository.CreateMemberRepository(dbtest.Open(s.T()))
	s.storage = newMemoryStorage()
	s.svc = CreateMemberService(s.repo, s.storage, config.Config{
		JWTConfig:     config.JWTConfig{JWTSecret: testJWTSecret, JWTExpirationHours: 1},
		ArticleConfig: testArticleConfig,
	})
}

func (s *MemberServiceTestSuite) signup() dto.MemberResponse {
	res, err := s.svc.Signup(s.ctx, dto.MemberSignupRequest{
		Email:    "apple@offer.com",
		Password: "s3cret!",
		Nickname: "apple",
		Address:  "Jongno-gu",
	})
	s.Require().NoError(err)
	return res
}

func (s *MemberServiceTestSuite) TestSignup() {
	res := s.signup()
	s.NotZero(res.ID)
	s.Len(res.ExternalID, 26)
	s.Equal("apple@offer.com", res.Email)
	s.Equal(domain.InitialAppleLevel, res.AppleLevel)

	stored, err := s.repo.GetMemberByPrincipal(s.ctx, "apple@offer.com")
	s.Require().NoError(err)
	s.Require().NotNil(stored.HashedPassword)
	s.NotEqual("s3cret!", *stored.HashedPassword)

	_, err = s.svc.Signup(s.ctx, dto.MemberSignupRequest{Email: "apple@offer.com", Password: "another", Nickname: "x", Address: "y"})
	s.ErrorIs(err, errs.ErrMemberAlreadyExists)
}

// staleExistsRepository answers every existence check with false, as a
// concurrent signup would see before the other insert commits.
type staleExistsRepository struct {
	repository.MemberRepository
}

func (staleExistsRepository) ExistsByPrincipal(ctx context.Context, principal string) (bool, error) {
	return false, nil
}

func (s *MemberServiceTestSuite) TestSignup_ConcurrentDuplicate() {
	svc := CreateMemberService(staleExistsRepository{s.repo}, s.storage, config.Config{
		JWTConfig: config.JWTConfig{JWTSecret: testJWTSecret, JWTExpirationHours: 1},
	})
	req := dto.MemberSignupRequest{Email: "apple@offer.com", Password: "s3cret!", Nickname: "apple", Address: "Jongno-gu"}

	_, err := svc.Signup(s.ctx, req)
	s.Require().NoError(err)

	_, err = svc.Signup(s.ctx, req)
	s.ErrorIs(err, errs.ErrMemberAlreadyExists)
}

func (s *MemberServiceTestSuite) TestLogin() {
	member := s.signup()

	res, err := s.svc.Login(s.ctx, dto.LoginRequest{Email: "apple@offer.com", Password: "s3cret!"})
	s.Require().NoError(err)
	s.Equal(member.ID, res.Member.ID)

	principal, err := utils.ParseJWTToken(res.Token, testJWTSecret)
	s.Require().NoError(err)
	s.Equal("apple@offer.com", principal)

	_, err = s.svc.Login(s.ctx, dto.LoginRequest{Email: "apple@offer.com", Password: "wrong"})
	s.ErrorIs(err, errs.ErrInvalidCredentials)

	_, err = s.svc.Login(s.ctx, dto.LoginRequest{Email: "ghost@offer.com", Password: "s3cret!"})
	s.ErrorIs(err, errs.ErrMemberNotFound)
}

func (s *MemberServiceTestSuite) TestLogin_SocialAccountHasNoPassword() {
	provider := "kakao"
	_, err := s.repo.AddMember(s.ctx, domain.Member{Principal: "kakao@offer.com", ExternalID: "01HXKAKAO", Nickname: "k", Address: "Busan", AppleLevel: 1, Provider: &provider})
	s.Require().NoError(err)

	_, err = s.svc.Login(s.ctx, dto.LoginRequest{Email: "kakao@offer.com", Password: "anything"})
	s.ErrorIs(err, errs.ErrInvalidCredentials)
}

func (s *MemberServiceTestSuite) TestIsDuplicate() {
	res, err := s.svc.IsDuplicate(s.ctx, "apple@offer.com")
	s.Require().NoError(err)
	s.False(res.IsDuplicate)

	s.signup()

	res, err = s.svc.IsDuplicate(s.ctx, "apple@offer.com")
	s.Require().NoError(err)
	s.True(res.IsDuplicate)
}

func (s *MemberServiceTestSuite) TestProfile() {
	s.signup()
	auth := dto.Authentication{LoginID: "apple@offer.com"}

	upload, err := s.svc.UploadProfileImage(s.ctx, imageFile("me.png", "me"))
	s.Require().NoError(err)
	s.Equal([]string{testCDN + "/profileImage/me.png"}, upload.ImageURLs)

	res, err := s.svc.UpdateMyProfile(s.ctx, dto.MemberProfileUpdateRequest{
		Nickname:        "green apple",
		Address:         "Mapo-gu",
		ProfileImageURL: &upload.ImageURLs[0],
	}, auth)
	s.Require().NoError(err)
	s.Equal("green apple", res.Nickname)

	profile, err := s.svc.GetMyProfile(s.ctx, auth)
	s.Require().NoError(err)
	s.Require().NotNil(profile.ProfileImage)
	s.Equal(testCDN+"/profileImage/me.png", *profile.ProfileImage)

	empty := ""
	_, err = s.svc.UpdateMyProfile(s.ctx, dto.MemberProfileUpdateRequest{Nickname: "green apple", Address: "Mapo-gu", ProfileImageURL: &empty}, auth)
	s.Require().NoError(err)

	profile, err = s.svc.GetMyProfile(s.ctx, auth)
	s.Require().NoError(err)
	s.Equal("Mapo-gu", profile.Address)
	s.Nil(profile.ProfileImage)

	_, err = s.svc.GetMyProfile(s.ctx, dto.Authentication{LoginID: "ghost@offer.com"})
	s.ErrorIs(err, errs.ErrMemberNotFound)
}

func TestMemberServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MemberServiceTestSuite))
}
