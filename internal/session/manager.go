package session

import (
	"log"
	"sync"

	"jokibot/internal/constants"
	"jokibot/internal/models"
)

// Manager управляет состояниями диалогов и черновиками заказов.
// Все данные живут только в памяти процесса: жизненный цикл черновика
// заканчивается сбросом диалога, переживать рестарт он не обязан.
type Manager struct {
	states     map[int64]constants.State // Ключ: chatID, значение: текущее состояние диалога
	drafts     map[int64]models.Order    // Ключ: chatID, значение: собираемый черновик заказа
	mutex      sync.RWMutex              // Защищает states и drafts
	chatLocks  map[int64]*sync.Mutex     // По одному мьютексу на чат для сериализации событий
	chatLockMu sync.Mutex                // Защищает карту chatLocks при инициализации
}

// NewManager создает новый экземпляр Manager.
func NewManager() *Manager {
	return &Manager{
		states:    make(map[int64]constants.State),
		drafts:    make(map[int64]models.Order),
		chatLocks: make(map[int64]*sync.Mutex),
	}
}

// GetState возвращает текущее состояние диалога для чата.
// Если состояние не установлено, возвращает STATE_MAIN_MENU.
func (m *Manager) GetState(chatID int64) constants.State {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	state, ok := m.states[chatID]
	if !ok {
		return constants.STATE_MAIN_MENU
	}
	return state
}

// SetState устанавливает новое состояние диалога для чата.
func (m *Manager) SetState(chatID int64, state constants.State) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.states[chatID] = state
	log.Printf("Manager.SetState: состояние для chatID %d установлено: %s", chatID, state)
}

// GetDraft возвращает черновик заказа для чата. Если черновика нет,
// возвращает пустой Order (создание ленивое, запись — через UpdateDraft).
func (m *Manager) GetDraft(chatID int64) models.Order {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.drafts[chatID]
}

// UpdateDraft сохраняет черновик заказа для чата.
func (m *Manager) UpdateDraft(chatID int64, draft models.Order) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.drafts[chatID] = draft
}

// Clear сбрасывает диалог: удаляет и состояние, и черновик.
// Вызывается на /start, на кнопке возврата в главное меню и после
// успешной загрузки подтверждения оплаты.
func (m *Manager) Clear(chatID int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.states, chatID)
	delete(m.drafts, chatID)
	log.Printf("Manager.Clear: состояние и черновик для chatID %d очищены.", chatID)
}

// LockChat возвращает мьютекс конкретного чата. Обработчик держит его на
// время обработки одного события, поэтому события одного чата всегда
// выполняются последовательно, а разные чаты — параллельно.
func (m *Manager) LockChat(chatID int64) *sync.Mutex {
	m.chatLockMu.Lock()
	defer m.chatLockMu.Unlock()
	lock, ok := m.chatLocks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		m.chatLocks[chatID] = lock
	}
	return lock
}
