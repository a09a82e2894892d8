package repos

import (
	"strings"

	"github.com/emotu/micro-cloud/internal/auth"
	"github.com/emotu/micro-cloud/internal/db/models"
)

func (s *RepositoryTestSuite) createCredential(userID string) *models.Credential {
	cred := &models.Credential{Name: "checkout", UserID: userID}
	s.Require().NoError(s.db.Create(cred).Error)
	return cred
}

func (s *RepositoryTestSuite) TestCredentialKeyGeneration() {
	cred := s.createCredential("u1")

	s.NotEmpty(cred.AppID)
	s.True(strings.HasPrefix(cred.TestKey, auth.TestKeyPrefix))
	s.True(strings.HasPrefix(cred.LiveKey, auth.LiveKeyPrefix))
	s.True(cred.Active())
}

func (s *RepositoryTestSuite) TestFindByKeySelectsKeyspace() {
	cred := s.createCredential("u1")

	byTest, err := s.credRepo.FindByKey(s.ctx, cred.TestKey)
	s.Require().NoError(err)
	s.Equal(cred.ID, byTest.ID)

	byLive, err := s.credRepo.FindByKey(s.ctx, cred.LiveKey)
	s.Require().NoError(err)
	s.Equal(cred.ID, byLive.ID)

	_, err = s.credRepo.FindByKey(s.ctx, auth.GenerateSecretKey(false))
	s.ErrorIs(err, ErrNotFound)
}

func (s *RepositoryTestSuite) TestResetKeysRotatesOnlySelected() {
	cred := s.createCredential("u1")
	oldTest, oldLive := cred.TestKey, cred.LiveKey

	cred.ResetKeys(true, false)
	s.Require().NoError(s.credRepo.Save(s.ctx, cred))

	s.NotEqual(oldTest, cred.TestKey)
	s.Equal(oldLive, cred.LiveKey)

	_, err := s.credRepo.FindByKey(s.ctx, oldTest)
	s.ErrorIs(err, ErrNotFound)

	found, err := s.credRepo.FindByKey(s.ctx, cred.TestKey)
	s.Require().NoError(err)
	s.Equal(cred.ID, found.ID)
}

func (s *RepositoryTestSuite) TestToggleActive() {
	cred := s.createCredential("u1")
	s.True(cred.Active())

	cred.ToggleActive()
	s.Require().NoError(s.credRepo.Save(s.ctx, cred))
	s.False(cred.Active())

	found, err := s.credRepo.GetByID(s.ctx, cred.ID)
	s.Require().NoError(err)
	s.False(found.Active())
}
