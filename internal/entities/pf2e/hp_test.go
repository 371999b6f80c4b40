package pf2e_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/pf2e"
)

type HpInfoTestSuite struct {
	suite.Suite
}

func TestHpInfoSuite(t *testing.T) {
	suite.Run(t, new(HpInfoTestSuite))
}

// pool returns a pool with the given maximum and current hit points
func (s *HpInfoTestSuite) pool(maxHP, current, temp int) *pf2e.HpInfo {
	hp := pf2e.NewHpInfo(maxHP, 0, 1, 0)
	if current < maxHP {
		hp.Change(current - maxHP)
	}
	hp.SetTemp(temp)
	s.Require().Equal(current, hp.CurrentHP())
	return hp
}

func (s *HpInfoTestSuite) TestNewHpInfo() {
	hp := pf2e.NewHpInfo(8, 10, 3, 2)
	s.Equal(8+(10+2)*3, hp.MaxHP())
	s.Equal(hp.MaxHP(), hp.CurrentHP())
	s.Equal(0, hp.TempHP())
}

func (s *HpInfoTestSuite) TestTempAbsorptionOrder() {
	hp := s.pool(20, 20, 5)

	hp.Change(-3)
	s.Equal(2, hp.TempHP())
	s.Equal(20, hp.CurrentHP())

	hp.Change(-3)
	s.Equal(0, hp.TempHP())
	s.Equal(19, hp.CurrentHP())
}

func (s *HpInfoTestSuite) TestExactAbsorptionLeavesCurrent() {
	hp := s.pool(20, 15, 4)
	hp.Change(-4)
	s.Equal(0, hp.TempHP())
	s.Equal(15, hp.CurrentHP())
}

func (s *HpInfoTestSuite) TestHealingSkipsTemp() {
	hp := s.pool(20, 10, 3)
	hp.Change(4)
	s.Equal(3, hp.TempHP())
	s.Equal(14, hp.CurrentHP())
}

func (s *HpInfoTestSuite) TestClamp() {
	for maxHP := 0; maxHP <= 12; maxHP += 3 {
		for current := 0; current <= maxHP; current++ {
			for temp := 0; temp <= 4; temp += 2 {
				for delta := -30; delta <= 30; delta += 7 {
					hp := s.pool(maxHP, current, temp)
					hp.Change(delta)
					s.GreaterOrEqual(hp.CurrentHP(), 0)
					s.LessOrEqual(hp.CurrentHP(), hp.MaxHP())
					s.GreaterOrEqual(hp.TempHP(), 0)
				}
			}
		}
	}
}

func (s *HpInfoTestSuite) TestZeroDeltaIsNoop() {
	hp := pf2e.NewHpInfo(10, 0, 1, 0)
	hp.RecomputeMax(1, -5) // max drops to 5, current stays 10
	hp.Change(0)
	s.Equal(10, hp.CurrentHP())

	hp.Change(1)
	s.Equal(5, hp.CurrentHP())
}

func (s *HpInfoTestSuite) TestSetTemp() {
	hp := s.pool(20, 20, 5)
	hp.SetTemp(3)
	s.Equal(3, hp.TempHP(), "temp hp does not stack")

	hp.SetTemp(-4)
	s.Equal(0, hp.TempHP())
}

func (s *HpInfoTestSuite) TestRecomputeMaxDoesNotClamp() {
	hp := pf2e.NewHpInfo(8, 8, 5, 2)
	s.Equal(58, hp.CurrentHP())

	s.Equal(28, hp.RecomputeMax(2, 2))
	s.Equal(58, hp.CurrentHP())
}

func (s *HpInfoTestSuite) TestJSON() {
	hp := pf2e.NewHpInfo(8, 10, 2, 1)
	hp.Change(-5)
	hp.SetTemp(3)

	data, err := json.Marshal(hp)
	s.Require().NoError(err)
	s.JSONEq(`{"ancestry_hp":8,"class_hp":10,"max_hp":30,"current_hp":25,"temp_hp":3}`, string(data))

	var decoded pf2e.HpInfo
	s.Require().NoError(json.Unmarshal(data, &decoded))
	s.Equal(*hp, decoded)
}
