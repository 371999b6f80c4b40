package character_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/pf2e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	mockclock "github.com/KirkDiggler/rpg-sheet/internal/pkg/clock/mock"
	character "github.com/KirkDiggler/rpg-sheet/internal/repositories/character"
	"github.com/KirkDiggler/rpg-sheet/internal/testutils"
	"github.com/KirkDiggler/rpg-sheet/internal/testutils/builders"
)

const (
	testCharID   = "char_123"
	testPlayerID = "player_456"
)

// RepositoryContractSuite runs the same behaviour against every store
type RepositoryContractSuite struct {
	suite.Suite
	newRepo func() character.Repository
	repo    character.Repository
	ctx     context.Context
}

func TestRedisRepositoryContract(t *testing.T) {
	suite.Run(t, &RepositoryContractSuite{
		newRepo: func() character.Repository {
			client, _ := testutils.CreateTestRedisClient(t)
			repo, err := character.NewRedis(&character.RedisConfig{Client: client})
			if err != nil {
				t.Fatalf("new redis repository: %v", err)
			}
			return repo
		},
	})
}

func TestSQLiteRepositoryContract(t *testing.T) {
	suite.Run(t, &RepositoryContractSuite{
		newRepo: func() character.Repository {
			repo, err := character.NewSQLite(context.Background(), &character.SQLiteConfig{
				Path: filepath.Join(t.TempDir(), "sheets.db"),
			})
			if err != nil {
				t.Fatalf("new sqlite repository: %v", err)
			}
			t.Cleanup(func() { _ = repo.Close() })
			return repo
		},
	})
}

func (s *RepositoryContractSuite) SetupTest() {
	s.repo = s.newRepo()
	s.ctx = context.Background()
}

func (s *RepositoryContractSuite) record(id, playerID, name string) *pf2e.SimpleCharacter {
	return builders.NewCharacterBuilder().
		WithID(id).
		WithPlayerID(playerID).
		WithName(name).
		WithLevel(3).
		WithAttribute(pf2e.AttributeCon, 2).
		WithProficiency("Athletics", pf2e.Trained).
		BuildSimple()
}

func (s *RepositoryContractSuite) TestCreateAndGet() {
	record := s.record(testCharID, testPlayerID, "Ketra")

	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: record})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, character.GetInput{ID: testCharID})
	s.Require().NoError(err)
	s.Equal(record, got.Character)
}

func (s *RepositoryContractSuite) TestCreateDuplicate() {
	record := s.record(testCharID, testPlayerID, "Ketra")
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: record})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, character.CreateInput{Character: record})
	s.True(errors.IsAlreadyExists(err), "got %v", err)
}

func (s *RepositoryContractSuite) TestCreateValidation() {
	testCases := []struct {
		name   string
		record *pf2e.SimpleCharacter
	}{
		{name: "nil record", record: nil},
		{name: "missing id", record: s.record("", testPlayerID, "Ketra")},
		{
			name: "malformed record",
			record: func() *pf2e.SimpleCharacter {
				r := s.record(testCharID, testPlayerID, "Ketra")
				r.HP = nil
				return r
			}(),
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Create(s.ctx, character.CreateInput{Character: tc.record})
			s.True(errors.IsInvalidArgument(err), "got %v", err)
		})
	}
}

func (s *RepositoryContractSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, character.GetInput{ID: "nope"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Get(s.ctx, character.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryContractSuite) TestUpdate() {
	record := s.record(testCharID, testPlayerID, "Ketra")
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: record})
	s.Require().NoError(err)

	record.Level = 4
	record.Text = "promoted"
	record.PlayerID = "player_new"
	_, err = s.repo.Update(s.ctx, character.UpdateInput{Character: record})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, character.GetInput{ID: testCharID})
	s.Require().NoError(err)
	s.Equal(4, got.Character.Level)
	s.Equal("promoted", got.Character.Text)

	old, err := s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Empty(old.Characters)

	moved, err := s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{PlayerID: "player_new"})
	s.Require().NoError(err)
	s.Len(moved.Characters, 1)
}

func (s *RepositoryContractSuite) TestUpdateMissing() {
	_, err := s.repo.Update(s.ctx, character.UpdateInput{Character: s.record("ghost", testPlayerID, "Ghost")})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryContractSuite) TestDelete() {
	record := s.record(testCharID, testPlayerID, "Ketra")
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: record})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, character.DeleteInput{ID: testCharID})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, character.GetInput{ID: testCharID})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, character.DeleteInput{ID: testCharID})
	s.True(errors.IsNotFound(err))

	listed, err := s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Empty(listed.Characters)
}

func (s *RepositoryContractSuite) TestListByPlayerIDOrdersByName() {
	for _, r := range []*pf2e.SimpleCharacter{
		s.record("char_b", testPlayerID, "Brannoc"),
		s.record("char_a", testPlayerID, "Aldra"),
		s.record("char_other", "player_other", "Cael"),
	} {
		_, err := s.repo.Create(s.ctx, character.CreateInput{Character: r})
		s.Require().NoError(err)
	}

	listed, err := s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Require().Len(listed.Characters, 2)
	s.Equal("Aldra", listed.Characters[0].Name)
	s.Equal("Brannoc", listed.Characters[1].Name)

	_, err = s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{})
	s.True(errors.IsInvalidArgument(err))
}

const legacyRecord = `{
	"id": "char_old",
	"player_id": "player_456",
	"name": "Old Ketra",
	"level": 3,
	"attributes": [1, 0, 2, 0, 0, 1],
	"text": "",
	"background": "Squire",
	"class": "Commander",
	"proficiencies": [["Athletics", "Skill", "Trained"]],
	"feats": [],
	"conditions": []
}`

func TestRedisRepositoryUpgradesLegacyRecords(t *testing.T) {
	client, _ := testutils.CreateTestRedisClientWithSetup(t, func(mr *miniredis.Miniredis) {
		_ = mr.Set("character:char_old", legacyRecord)
		_, _ = mr.SetAdd("character:player:player_456", "char_old")
	})
	repo, err := character.NewRedis(&character.RedisConfig{Client: client})
	if err != nil {
		t.Fatal(err)
	}

	got, err := repo.Get(context.Background(), character.GetInput{ID: "char_old"})
	if err != nil {
		t.Fatalf("get legacy record: %v", err)
	}
	if got.Character.SchemaVersion != pf2e.CurrentSchemaVersion {
		t.Fatalf("schema_version = %d, want %d", got.Character.SchemaVersion, pf2e.CurrentSchemaVersion)
	}
	if got.Character.HP.MaxHP() != 38 {
		t.Fatalf("max hp = %d, want 38", got.Character.HP.MaxHP())
	}
}

func TestRedisRepositoryMalformedRecord(t *testing.T) {
	client, mr := testutils.CreateTestRedisClientWithSetup(t, func(mr *miniredis.Miniredis) {
		_ = mr.Set("character:char_bad", `{"schema_version": 2, "player_id": "player_456", "level": 1}`)
		_, _ = mr.SetAdd("character:player:player_456", "char_bad", "char_gone")
	})
	repo, err := character.NewRedis(&character.RedisConfig{Client: client})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	_, err = repo.Get(ctx, character.GetInput{ID: "char_bad"})
	if !errors.IsMisconfigured(err) {
		t.Fatalf("expected misconfigured error, got %v", err)
	}

	if _, err := repo.Delete(ctx, character.DeleteInput{ID: "char_bad"}); err != nil {
		t.Fatalf("delete malformed record: %v", err)
	}
	if mr.Exists("character:char_bad") {
		t.Fatal("record still present after delete")
	}

	// dangling index entries are pruned on list
	listed, err := repo.ListByPlayerID(ctx, character.ListByPlayerIDInput{PlayerID: "player_456"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed.Characters) != 0 {
		t.Fatalf("listed %d characters, want 0", len(listed.Characters))
	}
	members, _ := mr.Members("character:player:player_456")
	if len(members) != 0 {
		t.Fatalf("index members = %v, want none", members)
	}
}

func TestNewRedisRequiresClient(t *testing.T) {
	if _, err := character.NewRedis(nil); !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if _, err := character.NewRedis(&character.RedisConfig{}); !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestSQLiteRepositoryTimestampsAndReopen(t *testing.T) {
	ctrl := gomock.NewController(t)
	clk := mockclock.NewMockClock(ctrl)
	created := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	gomock.InOrder(
		clk.EXPECT().Now().Return(created),
		clk.EXPECT().Now().Return(updated),
	)

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sheets.db")
	repo, err := character.NewSQLite(ctx, &character.SQLiteConfig{Path: path, Clock: clk})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	record := builders.NewCharacterBuilder().WithID(testCharID).BuildSimple()
	if _, err := repo.Create(ctx, character.CreateInput{Character: record}); err != nil {
		t.Fatalf("create: %v", err)
	}
	record.Name = "Renamed"
	if _, err := repo.Update(ctx, character.UpdateInput{Character: record}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := character.NewSQLite(ctx, &character.SQLiteConfig{Path: path})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Get(ctx, character.GetInput{ID: testCharID})
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Character.Name != "Renamed" {
		t.Fatalf("name = %q, want Renamed", got.Character.Name)
	}
}

func TestNewSQLiteRequiresPath(t *testing.T) {
	if _, err := character.NewSQLite(context.Background(), &character.SQLiteConfig{}); !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
