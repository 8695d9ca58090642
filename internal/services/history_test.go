package services_test

import (
	"context"
	"testing"

	"github.com/lafise/go-fp-transfer/internal/common"
	"github.com/lafise/go-fp-transfer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_history_AccountTransactions(t *testing.T) {
	testHelper := serviceTestHelper(t)
	testHelper.loadSession(t)
	ctx := context.Background()

	testHelper.services.Session.Ledger().Add(usdAccount, trxAt("T-1", "local debit", models.TransactionTypeDebit, day(3)))

	testHelper.mockDirectory.EXPECT().GetAccountTransactions(gomock.Any(), usdAccount).Return(models.TransactionPage{
		Page:       1,
		Size:       10,
		TotalCount: 2,
		Items: []models.SummarizedTransaction{
			trxAt("S-1", "salary", models.TransactionTypeCredit, day(1)),
			trxAt("T-1", "server view", models.TransactionTypeCredit, day(3)),
		},
	}, nil)

	got, err := testHelper.services.History.AccountTransactions(ctx, usdAccount)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "local debit", got[0].Description)
	assert.Equal(t, "salary", got[1].Description)
}

func Test_history_AccountTransactionsError(t *testing.T) {
	testHelper := serviceTestHelper(t)

	testHelper.mockDirectory.EXPECT().GetAccountTransactions(gomock.Any(), usdAccount).Return(models.TransactionPage{}, assert.AnError)

	_, err := testHelper.services.History.AccountTransactions(context.Background(), usdAccount)
	assert.ErrorIs(t, err, assert.AnError)
}

func Test_history_RecentTransactions(t *testing.T) {
	type args struct {
		limit int
	}
	tests := []struct {
		name    string
		args    args
		doMock  func(h testServiceHelper)
		want    []string
		wantErr bool
	}{
		{
			name: "merged across accounts",
			args: args{limit: 0},
			doMock: func(h testServiceHelper) {
				h.mockDirectory.EXPECT().GetAccountTransactions(gomock.Any(), usdAccount).
					Return(models.TransactionPage{Items: []models.SummarizedTransaction{trxAt("A", "a", models.TransactionTypeDebit, day(2))}}, nil)
				h.mockDirectory.EXPECT().GetAccountTransactions(gomock.Any(), nioAccount).
					Return(models.TransactionPage{Items: []models.SummarizedTransaction{trxAt("B", "b", models.TransactionTypeCredit, day(5))}}, nil)
				h.mockDirectory.EXPECT().GetAccountTransactions(gomock.Any(), smallUSDAccount).
					Return(models.TransactionPage{Items: []models.SummarizedTransaction{trxAt("C", "c", models.TransactionTypeCredit, nil), trxAt("D", "d", models.TransactionTypeCredit, day(4))}}, nil)
			},
			want: []string{"b", "d", "a", "c"},
		},
		{
			name: "limited",
			args: args{limit: 1},
			doMock: func(h testServiceHelper) {
				h.mockDirectory.EXPECT().GetAccountTransactions(gomock.Any(), gomock.Any()).
					Return(models.TransactionPage{Items: []models.SummarizedTransaction{trxAt("A", "a", models.TransactionTypeDebit, day(2))}}, nil).
					Times(3)
			},
			want: []string{"a"},
		},
		{
			name: "any account failing fails the whole list",
			doMock: func(h testServiceHelper) {
				h.mockDirectory.EXPECT().GetAccountTransactions(gomock.Any(), gomock.Any()).
					Return(models.TransactionPage{}, assert.AnError).
					MinTimes(1)
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testHelper := serviceTestHelper(t)
			testHelper.loadSession(t)
			if tt.doMock != nil {
				tt.doMock(testHelper)
			}

			got, err := testHelper.services.History.RecentTransactions(context.Background(), tt.args.limit)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			descriptions := make([]string, 0, len(got))
			for _, trx := range got {
				descriptions = append(descriptions, trx.Description)
			}
			assert.Equal(t, tt.want, descriptions)
		})
	}
}

func Test_history_RecentTransactionsWithoutSession(t *testing.T) {
	testHelper := serviceTestHelper(t)

	_, err := testHelper.services.History.RecentTransactions(context.Background(), 10)
	assert.ErrorIs(t, err, common.ErrSessionNotLoaded)
}
