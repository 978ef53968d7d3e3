package bot

import (
	"testing"

	"github.com/halarumdigital/agente-financeiro/internal/testutil"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		intent Intent
		amount string
		target string
	}{
		{"deposit", "guardar 100 na caixinha viagem", IntentSavingsDeposit, "100", "viagem"},
		{"deposit_with_symbol", "depositar R$ 50,25 na caixinha reserva", IntentSavingsDeposit, "50.25", "reserva"},
		{"withdraw", "retirar 30 da caixinha viagem", IntentSavingsWithdraw, "30", "viagem"},
		{"withdraw_sacar", "sacar R$ 1.000,00 da caixinha emergência", IntentSavingsWithdraw, "1000", "emergência"},
		{"create_box", "criar caixinha carro", IntentSavingsCreate, "", "carro"},
		{"box_balance", "saldo caixinha viagem", IntentSavingsBalance, "", "viagem"},
		{"box_balance_short", "caixinha viagem", IntentSavingsBalance, "", "viagem"},
		{"list_boxes", "caixinhas", IntentSavingsList, "", ""},
		{"list_boxes_prefixed", "minhas caixinhas", IntentSavingsList, "", ""},
		{"create_bill", "criar conta internet 99 vence dia 10", IntentBillCreate, "99", "internet"},
		{"create_bill_short", "nova conta luz 150 dia 20", IntentBillCreate, "150", "luz"},
		{"delete_bill", "excluir conta internet", IntentBillDelete, "", "internet"},
		{"bill_paid", "já paguei a conta de luz", IntentBillPaid, "", "luz"},
		{"bill_paid_short", "paguei internet", IntentBillPaid, "", "internet"},
		{"list_bills", "contas", IntentBillList, "", ""},
		{"transaction", "gastei 50 reais no mercado", IntentTransaction, "", ""},
		{"income", "recebi 3000 de salário", IntentTransaction, "", ""},
		{"chitchat", "bom dia!", IntentUnknown, "", ""},
		{"keyword_no_digit", "gastei demais esse mês", IntentUnknown, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			if got.Intent != tt.intent {
				t.Fatalf("Classify(%q).Intent = %v, want %v", tt.text, got.Intent, tt.intent)
			}
			if tt.amount != "" {
				testutil.AssertDecimalEqual(t, tt.amount, got.Amount)
			}
			if tt.target != "" && got.Name != tt.target {
				t.Errorf("Classify(%q).Name = %q, want %q", tt.text, got.Name, tt.target)
			}
		})
	}
}

func TestClassifyCreateBoxWithGoal(t *testing.T) {
	got := Classify("criar caixinha carro meta 50000")
	if got.Intent != IntentSavingsCreate {
		t.Fatalf("expected IntentSavingsCreate, got %v", got.Intent)
	}
	if got.Name != "carro" {
		t.Errorf("expected name carro, got %q", got.Name)
	}
	testutil.AssertDecimalEqual(t, "50000", got.Goal)
}

func TestClassifyCreateBillDueDay(t *testing.T) {
	got := Classify("adicionar conta academia 89,90 dia 5")
	if got.Intent != IntentBillCreate {
		t.Fatalf("expected IntentBillCreate, got %v", got.Intent)
	}
	if got.DueDay != 5 {
		t.Errorf("expected due day 5, got %d", got.DueDay)
	}
	testutil.AssertDecimalEqual(t, "89.9", got.Amount)
}

func TestClassifyDepositBeatsTransactionHeuristic(t *testing.T) {
	// "guardar 50 na caixinha x" contains digits but must never reach the
	// AI parser as a plain transaction.
	got := Classify("guardar 50 na caixinha reserva")
	if got.Intent != IntentSavingsDeposit {
		t.Errorf("expected IntentSavingsDeposit, got %v", got.Intent)
	}
}
