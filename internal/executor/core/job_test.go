package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJob_DoneAfterResultWritten(t *testing.T) {
	release := make(chan struct{})
	job := StartJob(func() int {
		<-release
		return 42
	})

	assert.False(t, job.Done())
	close(release)

	assert.Equal(t, 42, job.Wait())
	assert.True(t, job.Done())
	// 多次 Wait 返回同一个结果
	assert.Equal(t, 42, job.Wait())
}

func TestJob_PollUntilDone(t *testing.T) {
	job := StartJob(func() string {
		time.Sleep(20 * time.Millisecond)
		return "ok"
	})

	assert.Eventually(t, job.Done, time.Second, 5*time.Millisecond)
	assert.Equal(t, "ok", job.Wait())
}
