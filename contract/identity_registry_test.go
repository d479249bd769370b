package contract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/TakuGaiax/Employee-NFT/metadata"
	"github.com/TakuGaiax/Employee-NFT/model"
)

type IdentityRegistrySuite struct {
	suite.Suite
	ledger *testLedger
}

func TestIdentityRegistrySuite(t *testing.T) {
	suite.Run(t, new(IdentityRegistrySuite))
}

func (s *IdentityRegistrySuite) SetupTest() {
	s.ledger = newTestLedger(s.T())
	s.ledger.bootstrap()
}

func (s *IdentityRegistrySuite) registry(caller string) *IdentityRegistry {
	return NewIdentityRegistry(s.ledger.as(caller))
}

func ama() model.Record {
	return model.Record{SubjectName: "Ama", Group: "DAO", Message: "Hello!"}
}

func (s *IdentityRegistrySuite) mint(holder string) uint64 {
	id, err := s.registry(adminID).Mint(adminID, holder, ama())
	s.Require().NoError(err)
	return id
}

func (s *IdentityRegistrySuite) TestMintAssignsSequentialIDs() {
	s.Run("admin mints for two holders with identical fields", func() {
		s.Equal(uint64(0), s.mint(addr1))
		s.Equal(uint64(1), s.mint(addr2))

		reg := s.registry(addr3)
		minters, err := reg.AllMinters()
		s.Require().NoError(err)
		s.Equal([]string{addr1, addr2}, minters)

		owner, err := reg.OwnerOf(0)
		s.Require().NoError(err)
		s.Equal(addr1, owner)
		owner, err = reg.OwnerOf(1)
		s.Require().NoError(err)
		s.Equal(addr2, owner)

		supply, err := reg.TotalSupply()
		s.Require().NoError(err)
		s.Equal(uint64(2), supply)
	})

	s.Run("owner may mint without being an admin", func() {
		id, err := s.registry(ownerID).Mint(ownerID, addr3, ama())
		s.Require().NoError(err)
		s.Equal(uint64(2), id)
	})
}

func (s *IdentityRegistrySuite) TestMintRejectsNonAdmin() {
	before := s.ledger.snapshot()
	_, err := s.registry(addr1).Mint(addr1, addr1, ama())
	s.Require().ErrorIs(err, ErrUnauthorized)
	s.Equal("non-owner", err.Error())
	s.Equal(before, s.ledger.snapshot())
}

func (s *IdentityRegistrySuite) TestUnauthorizedIsCheckedBeforeDuplicate() {
	s.mint(addr1)
	_, err := s.registry(addr2).Mint(addr2, addr1, ama())
	s.Require().ErrorIs(err, ErrUnauthorized)
}

func (s *IdentityRegistrySuite) TestMintRejectsDuplicateSubject() {
	s.mint(addr1)
	before := s.ledger.snapshot()

	_, err := s.registry(adminID).Mint(adminID, addr1, model.Record{SubjectName: "Taku", Group: "NFT", Message: "Hey!"})
	s.Require().ErrorIs(err, ErrDuplicateSubject)
	s.Equal("Employee already has an ID NFT", err.Error())
	s.Equal(before, s.ledger.snapshot())

	reg := s.registry(addr3)
	minters, err := reg.AllMinters()
	s.Require().NoError(err)
	s.Equal([]string{addr1}, minters)
	supply, err := reg.TotalSupply()
	s.Require().NoError(err)
	s.Equal(uint64(1), supply)
}

func (s *IdentityRegistrySuite) TestMintValidatesArguments() {
	_, err := s.registry(adminID).Mint(adminID, "", ama())
	s.Require().ErrorIs(err, ErrInvalidArgument)

	_, err = s.registry(adminID).Mint(adminID, addr1, model.Record{Group: "DAO"})
	s.Require().ErrorIs(err, ErrInvalidArgument)

	_, err = s.registry(adminID).Mint(adminID, addr1, model.Record{SubjectName: strings.Repeat("x", maxStringInputLength+1)})
	s.Require().ErrorIs(err, ErrInvalidArgument)

	has, err := s.registry(addr1).HasToken(addr1)
	s.Require().NoError(err)
	s.False(has)
}

func (s *IdentityRegistrySuite) TestUniquenessIndex() {
	id := s.mint(addr2)
	reg := s.registry(addr3)

	has, err := reg.HasToken(addr2)
	s.Require().NoError(err)
	s.True(has)

	got, err := reg.TokenOf(addr2)
	s.Require().NoError(err)
	s.Equal(id, got)

	_, err = reg.TokenOf(addr1)
	s.Require().ErrorIs(err, ErrInvalidToken)
}

func (s *IdentityRegistrySuite) TestUpdate() {
	s.mint(addr1)

	s.Run("admin update is reflected in the next render", func() {
		updated := model.Record{SubjectName: "Taku", Group: "NFT", Message: "Good day!"}
		s.Require().NoError(s.registry(adminID).Update(adminID, 0, updated))

		reg := s.registry(addr3)
		desc, err := reg.Descriptor(0)
		s.Require().NoError(err)
		uri, err := desc.TokenURI()
		s.Require().NoError(err)
		decoded, err := metadata.Decode(uri)
		s.Require().NoError(err)
		svg, err := metadata.DecodeImage(decoded.Image)
		s.Require().NoError(err)
		s.Contains(svg, "Taku")
		s.Contains(svg, "NFT")
		s.Contains(svg, "Good day!")

		doc, err := reg.Get(0)
		s.Require().NoError(err)
		s.Equal(addr1, doc.Owner)
		s.Equal(uint64(0), doc.ID)
		s.Equal(adminID, doc.LastUpdatedBy)

		minters, err := reg.AllMinters()
		s.Require().NoError(err)
		s.Equal([]string{addr1}, minters)
	})

	s.Run("non-admin update fails", func() {
		before := s.ledger.snapshot()
		err := s.registry(addr1).Update(addr1, 0, ama())
		s.Require().ErrorIs(err, ErrUnauthorized)
		s.Equal("non-owner", err.Error())
		s.Equal(before, s.ledger.snapshot())
	})

	s.Run("update of a nonexistent token fails", func() {
		err := s.registry(adminID).Update(adminID, 9999, ama())
		s.Require().ErrorIs(err, ErrInvalidToken)
		s.Equal("Invalid token", err.Error())
	})
}

func (s *IdentityRegistrySuite) TestReadsOfMissingTokens() {
	reg := s.registry(addr1)
	_, err := reg.OwnerOf(0)
	s.ErrorIs(err, ErrInvalidToken)
	_, err = reg.Descriptor(0)
	s.ErrorIs(err, ErrInvalidToken)

	minters, err := reg.AllMinters()
	s.Require().NoError(err)
	s.Empty(minters)
}

func (s *IdentityRegistrySuite) TestDescriptorRoundTrip() {
	s.mint(addr1)
	s.mint(addr2)

	desc, err := s.registry(addr3).Descriptor(0)
	s.Require().NoError(err)
	rec, err := desc.Record()
	s.Require().NoError(err)
	s.Equal(ama(), rec)

	svg, err := metadata.DecodeImage(desc.Image)
	s.Require().NoError(err)
	s.Contains(svg, "Ama")
	s.Contains(svg, "DAO")
	s.Contains(svg, "Hello!")
	s.Contains(svg, metadata.EmployeeIDTemplate.Title)
}

func (s *IdentityRegistrySuite) TestFieldLengthCap() {
	atCap := model.Record{SubjectName: "Ama", Group: strings.Repeat("g", maxStringInputLength), Message: strings.Repeat("m", maxStringInputLength)}
	id, err := s.registry(adminID).Mint(adminID, addr1, atCap)
	s.Require().NoError(err)

	before := s.ledger.snapshot()
	overCap := model.Record{SubjectName: "Ama", Group: "DAO", Message: strings.Repeat("m", maxStringInputLength+1)}
	_, err = s.registry(adminID).Mint(adminID, addr2, overCap)
	s.Require().ErrorIs(err, ErrInvalidArgument)
	s.Equal("message exceeds max length 256", err.Error())

	err = s.registry(adminID).Update(adminID, id, overCap)
	s.Require().ErrorIs(err, ErrInvalidArgument)
	s.Equal(before, s.ledger.snapshot())
}

func (s *IdentityRegistrySuite) TestMarkupIsEscapedInImage() {
	rec := model.Record{SubjectName: "Ama", Group: "R&D", Message: "<3 you"}
	id, err := s.registry(adminID).Mint(adminID, addr1, rec)
	s.Require().NoError(err)

	desc, err := s.registry(addr2).Descriptor(id)
	s.Require().NoError(err)
	svg, err := metadata.DecodeImage(desc.Image)
	s.Require().NoError(err)
	s.Contains(svg, "R&amp;D")
	s.Contains(svg, "&lt;3 you")
	s.NotContains(svg, "<3 you")

	got, err := desc.Record()
	s.Require().NoError(err)
	s.Equal(rec, got)
}
