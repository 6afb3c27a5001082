package get_availability

import (
	"time"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
)

// Request модель запроса доступности на дату
type Request struct {
	ResourceID    string    // пусто = ресурс по умолчанию
	Date          time.Time // календарная дата, время суток игнорируется
	BlockMinutes  *int      // nil = длительность по умолчанию из расписания
	SlotIncrement *int      // nil = BlockMinutes
}

// Response модель ответа со слотами
type Response struct {
	Date          time.Time     // Дата в часовом поясе расписания
	ResourceID    string        // Ресурс, для которого посчитаны слоты
	BlockMinutes  int           // Фактическая длительность
	SlotIncrement int           // Фактический шаг
	Slots         []domain.Slot // Упорядочены по времени начала
}
