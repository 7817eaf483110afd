package memory

import (
	"testing"
	"time"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndGet(t *testing.T) {
	repo := NewSessionRepository()
	sess := &entity.Session{
		Id:        uuid.New(),
		Phase:     constant.PhaseCreated,
		CreatedAt: time.Now(),
	}

	repo.Save(sess)

	got, found := repo.Get(sess.Id)
	require.True(t, found)
	assert.Same(t, sess, got)
	assert.Equal(t, 1, repo.Count())
}

func TestGetUnknownId(t *testing.T) {
	repo := NewSessionRepository()

	_, found := repo.Get(uuid.New())
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	repo := NewSessionRepository()
	sess := &entity.Session{Id: uuid.New(), Phase: constant.PhaseCreated}

	repo.Save(sess)
	repo.Delete(sess.Id)

	_, found := repo.Get(sess.Id)
	assert.False(t, found)
	assert.Zero(t, repo.Count())
}

func TestSaveOverwrites(t *testing.T) {
	repo := NewSessionRepository()
	id := uuid.New()

	repo.Save(&entity.Session{Id: id, Phase: constant.PhaseCreated})
	repo.Save(&entity.Session{Id: id, Phase: constant.PhaseActive})

	got, found := repo.Get(id)
	require.True(t, found)
	assert.Equal(t, constant.PhaseActive, got.Phase)
	assert.Equal(t, 1, repo.Count())
}
