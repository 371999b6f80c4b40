package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

type recordProblem struct{ field string }

func (p *recordProblem) Error() string { return "bad " + p.field }

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "character not found",
			expected: "NOT_FOUND: character not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "unknown mutation kind",
			expected: "INVALID_ARGUMENT: unknown mutation kind",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.NotFound("character not found").
		WithMeta("character_id", "char_1").
		WithMeta("player_id", "player_1")

	s.Assert().Equal("char_1", err.Meta["character_id"])
	s.Assert().Equal("player_1", err.Meta["player_id"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("database connection failed")
	wrapped := errors.Wrap(baseErr, "failed to get character")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to get character", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
	s.Assert().Nil(errors.Wrap(nil, "nothing"))
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	notFound := errors.NotFound("character not found").WithMeta("character_id", "char_1")
	wrapped := errors.Wrapf(notFound, "failed to load %s", "char_1")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().Equal("char_1", wrapped.Meta["character_id"])
	s.Assert().True(errors.Is(wrapped, errors.NotFound("other")))
	s.Assert().False(errors.Is(wrapped, errors.Internal("other")))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	inner := errors.InvalidArgument("bad label").WithMeta("label", "Godlike")
	wrapped := errors.WrapWithCodef(inner, errors.CodeFailedPrecondition, "cannot load %s", "sheet")

	s.Assert().True(errors.IsFailedPrecondition(wrapped))
	s.Assert().Equal("Godlike", wrapped.Meta["label"])
	s.Assert().Equal("cannot load sheet", wrapped.Message)
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeInternal, "nothing"))
}

func (s *ErrorsTestSuite) TestMisconfigured() {
	cause := &recordProblem{field: "attributes"}
	err := errors.Misconfigured(cause, "malformed record")

	s.Assert().True(errors.IsMisconfigured(err))
	s.Assert().True(errors.IsFailedPrecondition(err))

	var problem *recordProblem
	s.Require().True(errors.As(err, &problem))
	s.Assert().Equal("attributes", problem.field)

	bare := errors.Misconfigured(nil, "malformed record")
	s.Assert().True(errors.IsMisconfigured(bare))
	s.Assert().Nil(bare.Unwrap())

	s.Assert().False(errors.IsMisconfigured(errors.FailedPrecondition("schema too new")))
}

func (s *ErrorsTestSuite) TestErrorCheckers() {
	s.Assert().True(errors.IsNotFound(errors.NotFoundf("character %s not found", "x")))
	s.Assert().True(errors.IsInvalidArgument(errors.InvalidArgumentf("bad %s", "x")))
	s.Assert().True(errors.IsAlreadyExists(errors.AlreadyExistsf("feat %q present", "x")))
	s.Assert().True(errors.IsInternal(errors.Internal("boom")))
	s.Assert().True(errors.IsInternal(fmt.Errorf("plain")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
	s.Assert().Nil(errors.GetMeta(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestToGRPCError() {
	testCases := []struct {
		name    string
		err     error
		code    codes.Code
		message string
	}{
		{
			name:    "not found",
			err:     errors.NotFound("character not found"),
			code:    codes.NotFound,
			message: "character not found",
		},
		{
			name:    "misconfigured keeps cause text",
			err:     errors.Misconfigured(&recordProblem{field: "level"}, "malformed record"),
			code:    codes.FailedPrecondition,
			message: "malformed record: bad level",
		},
		{
			name:    "plain error",
			err:     fmt.Errorf("boom"),
			code:    codes.Internal,
			message: "boom",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			st, ok := status.FromError(errors.ToGRPCError(tc.err))
			s.Require().True(ok)
			s.Assert().Equal(tc.code, st.Code())
			s.Assert().Equal(tc.message, st.Message())
		})
	}

	s.Assert().Nil(errors.ToGRPCError(nil))
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	original := errors.Misconfigured(nil, "duplicate proficiency name").WithMeta("name", "Athletics")

	back := errors.FromGRPCError(errors.ToGRPCError(original))

	s.Assert().True(errors.IsMisconfigured(back))
	s.Assert().Equal("Athletics", errors.GetMeta(back)["name"])
	var e *errors.Error
	s.Require().True(errors.As(back, &e))
	s.Assert().Equal("duplicate proficiency name", e.Message)
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	for _, code := range []errors.Code{
		errors.CodeCanceled, errors.CodeInvalidArgument, errors.CodeDeadlineExceeded,
		errors.CodeNotFound, errors.CodeAlreadyExists, errors.CodeFailedPrecondition,
		errors.CodeUnimplemented, errors.CodeInternal, errors.CodeUnavailable,
	} {
		back := errors.FromGRPCError(status.Error(code.GRPCCode(), "x"))
		s.Assert().Equal(code, errors.GetCode(back), code.String())
	}
	s.Assert().Equal(codes.Unknown, errors.Code("BOGUS").GRPCCode())
}
