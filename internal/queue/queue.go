// Package queue реализует общепроцессный почтовый ящик фоновых задач.
//
// Очередь — единственная структура, которую одновременно мутируют
// несколько продюсеров (Poller) и консьюмеров (Dispatcher), поэтому она
// синхронизирована внутри. Создаётся явно в main и передаётся зависимостью;
// никакого глобального состояния.
package queue

import (
	"sync"

	"github.com/pribylovaa/hackerbabel/internal/models"
)

// Queue — неограниченный потокобезопасный буфер задач без порядка выдачи.
// Push никогда не блокируется; Drain — неблокирующий опрос.
type Queue struct {
	mu   sync.Mutex
	jobs []models.Job
}

// New создаёт пустую очередь.
func New() *Queue {
	return &Queue{}
}

// Push добавляет задачу. Рост неограничен — принятый риск этой
// конструкции: backpressure применяет пул воркеров, а не очередь.
func (q *Queue) Push(job models.Job) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.jobs = append(q.jobs, job)
}

// Drain снимает до maxN задач и сразу возвращается; пустая очередь даёт
// nil без ожидания. maxN <= 0 означает «всё, что есть».
func (q *Queue) Drain(maxN int) []models.Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.jobs)
	if n == 0 {
		return nil
	}

	if maxN > 0 && maxN < n {
		n = maxN
	}

	out := make([]models.Job, n)
	copy(out, q.jobs[:n])

	rest := len(q.jobs) - n
	copy(q.jobs, q.jobs[n:])
	q.jobs = q.jobs[:rest]

	return out
}

// Len возвращает текущее число задач в очереди.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.jobs)
}
