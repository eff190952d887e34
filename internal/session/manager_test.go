package session

import (
	"testing"

	"jokibot/internal/constants"
	"jokibot/internal/models"
)

func TestStateDefaultsToMainMenu(t *testing.T) {
	m := NewManager()
	if got := m.GetState(100); got != constants.STATE_MAIN_MENU {
		t.Errorf("для нового чата ожидалось main_menu, получено %s", got)
	}
}

func TestSetAndClear(t *testing.T) {
	m := NewManager()
	m.SetState(100, constants.STATE_COLLECT_NAME)
	m.UpdateDraft(100, models.Order{OrderID: "ORDER123456", Nama: "Budi"})

	if got := m.GetState(100); got != constants.STATE_COLLECT_NAME {
		t.Errorf("состояние: получено %s", got)
	}
	if got := m.GetDraft(100); got.Nama != "Budi" {
		t.Errorf("черновик: получено %+v", got)
	}

	m.Clear(100)
	if got := m.GetState(100); got != constants.STATE_MAIN_MENU {
		t.Errorf("после Clear ожидалось main_menu, получено %s", got)
	}
	if got := m.GetDraft(100); got != (models.Order{}) {
		t.Errorf("после Clear черновик должен быть пустым, получено %+v", got)
	}
}

func TestChatsAreIndependent(t *testing.T) {
	m := NewManager()
	m.SetState(1, constants.STATE_COLLECT_NAME)
	m.SetState(2, constants.STATE_AWAIT_DP_PROOF)
	m.Clear(1)

	if got := m.GetState(2); got != constants.STATE_AWAIT_DP_PROOF {
		t.Errorf("сброс чужого чата затронул состояние: %s", got)
	}
}

func TestLockChatReturnsSameMutex(t *testing.T) {
	m := NewManager()
	a := m.LockChat(7)
	b := m.LockChat(7)
	if a != b {
		t.Error("для одного чата должен возвращаться один и тот же мьютекс")
	}
	if m.LockChat(8) == a {
		t.Error("разные чаты не должны делить мьютекс")
	}
}
