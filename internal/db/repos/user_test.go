package repos

import (
	"github.com/emotu/micro-cloud/internal/db/models"
)

func (s *RepositoryTestSuite) TestCreateUserGeneratesIdentifier() {
	user := s.createUser("john.doe@example.com", "+2348100000001")

	s.NotEmpty(user.ID)
	s.False(user.DateCreated.IsZero())
	s.False(user.LastUpdated.IsZero())
}

func (s *RepositoryTestSuite) TestGetUserByID() {
	created := s.createUser("john.doe@example.com", "+2348100000001")

	found, err := s.userRepo.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.Email, found.Email)

	_, err = s.userRepo.GetByID(s.ctx, "missing")
	s.ErrorIs(err, ErrNotFound)
}

func (s *RepositoryTestSuite) TestFindByUsername() {
	created := s.createUser("john.doe@example.com", "+2348100000001")

	byEmail, err := s.userRepo.FindByUsername(s.ctx, "john.doe@example.com")
	s.Require().NoError(err)
	s.Equal(created.ID, byEmail.ID)

	byPhone, err := s.userRepo.FindByUsername(s.ctx, "+2348100000001")
	s.Require().NoError(err)
	s.Equal(created.ID, byPhone.ID)

	_, err = s.userRepo.FindByUsername(s.ctx, "stranger@example.com")
	s.ErrorIs(err, ErrNotFound)
}

func (s *RepositoryTestSuite) TestUserExists() {
	s.createUser("john.doe@example.com", "+2348100000001")

	exists, err := s.userRepo.Exists(s.ctx, "john.doe@example.com", "+2348199999999")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.userRepo.Exists(s.ctx, "other@example.com", "+2348100000001")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.userRepo.Exists(s.ctx, "other@example.com", "+2348199999999")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *RepositoryTestSuite) TestHasAnyRole() {
	user := &models.User{Roles: models.StringList{"admin", "support"}}

	s.True(user.HasAnyRole())
	s.True(user.HasAnyRole("support"))
	s.True(user.HasAnyRole("finance", "admin"))
	s.False(user.HasAnyRole("finance"))
}
