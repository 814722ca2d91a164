package proc

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statusFixture = `Name:	bash
Umask:	0022
State:	S (sleeping)
Tgid:	4242
Pid:	4242
PPid:	4241
Uid:	1000	1000	1000	1000
Gid:	1000	1000	1000	1000
VmPeak:	  210000 kB
VmSize:	  204800 kB
VmRSS:	    5120 kB
`

func TestSource_Stat(t *testing.T) {
	s := newTestSource(t, map[string]string{
		"/proc/42/stat": indexedStatLine("worker", 52) + "\n",
	})
	st, err := s.Stat(42)
	require.NoError(t, err)
	assert.Equal(t, "worker", st.Comm)
	assert.Equal(t, uint64(22), st.StartTime)
}

func TestSource_Stat_Empty(t *testing.T) {
	s := newTestSource(t, map[string]string{"/proc/42/stat": "\n"})
	_, err := s.Stat(42)
	assert.ErrorIs(t, err, ErrNoStat)
}

func TestSource_PIDFilesGone(t *testing.T) {
	s := newTestSource(t, map[string]string{"/proc/stat": statFixture})

	_, err := s.Stat(99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProcessGone))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "pid 99")

	_, err = s.Status(99)
	assert.ErrorIs(t, err, ErrProcessGone)

	_, err = s.Cmdline(99)
	assert.ErrorIs(t, err, ErrProcessGone)
}

func TestSource_Status(t *testing.T) {
	s := newTestSource(t, map[string]string{"/proc/4242/status": statusFixture})
	st, err := s.Status(4242)
	require.NoError(t, err)

	kb, ok := st.VmSizeKB.Get()
	require.True(t, ok)
	assert.Equal(t, uint64(204800), kb)

	uid, ok := st.UID.Get()
	require.True(t, ok)
	assert.Equal(t, "1000", uid)
}

func TestSource_Status_KernelThread(t *testing.T) {
	s := newTestSource(t, map[string]string{
		"/proc/2/status": "Name:\tkthreadd\nState:\tS (sleeping)\nUid:\t0\t0\t0\t0\n",
	})
	st, err := s.Status(2)
	require.NoError(t, err)
	assert.False(t, st.VmSizeKB.Valid())
	assert.Equal(t, "0", st.UID.Or(""))
}

func TestSource_Cmdline(t *testing.T) {
	s := newTestSource(t, map[string]string{
		"/proc/7/cmdline": "/usr/bin/python3\x00-m\x00http.server\x00",
		"/proc/2/cmdline": "",
	})

	cmd, err := s.Cmdline(7)
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/python3 -m http.server", cmd)

	cmd, err = s.Cmdline(2)
	require.NoError(t, err)
	assert.Empty(t, cmd)
}
