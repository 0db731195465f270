package enforcer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/CameronXie/sap-api-layer/internal/decisionmaker"
)

type mockDecisionMaker struct {
	mock.Mock
}

func (m *mockDecisionMaker) MakeDecision(ctx context.Context, req *decisionmaker.DecisionRequest) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}

func TestEnforcer_NormalizesResource(t *testing.T) {
	cases := map[string]struct {
		resource string
		expected string
	}{
		"mixed case":       {resource: "/api/GetSalesOrderList", expected: "/api/getsalesorderlist"},
		"trailing slash":   {resource: "/api/GetSalesOrderList/", expected: "/api/getsalesorderlist"},
		"repeated slashes": {resource: "/API//GetSalesOrderList", expected: "/api/getsalesorderlist"},
		"relative":         {resource: "api/GetSalesOrderList", expected: "/api/getsalesorderlist"},
		"empty":            {resource: "", expected: "/"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			dm := new(mockDecisionMaker)
			dm.On("MakeDecision", mock.Anything, &decisionmaker.DecisionRequest{
				Subject:  "bob",
				Resource: tc.expected,
				Action:   "get",
			}).Return(true, nil)

			allowed, err := NewEnforcer(dm).Enforce(context.TODO(), &AccessRequest{
				Subject:  " Bob ",
				Resource: tc.resource,
				Action:   "GET",
			})

			assert.True(t, allowed)
			assert.NoError(t, err)
			dm.AssertExpectations(t)
		})
	}
}

func TestEnforcer_Enforce(t *testing.T) {
	cases := map[string]struct {
		decision    bool
		decisionErr error
	}{
		"allowed": {decision: true},
		"denied":  {decision: false},
		"error":   {decision: false, decisionErr: errors.New("policy unavailable")},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			dm := new(mockDecisionMaker)
			dm.On("MakeDecision", mock.Anything, &decisionmaker.DecisionRequest{
				Subject:  "alice@example.com",
				Resource: "/api/getpurchaseorder",
				Action:   "get",
			}).Return(tc.decision, tc.decisionErr)

			allowed, err := NewEnforcer(dm).Enforce(context.TODO(), &AccessRequest{
				Subject:  "Alice@Example.com",
				Resource: "/api/GetPurchaseOrder",
				Action:   "GET",
			})

			assert.Equal(t, tc.decision, allowed)
			assert.Equal(t, tc.decisionErr, err)
			dm.AssertExpectations(t)
		})
	}
}
