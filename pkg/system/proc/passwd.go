package proc

import (
	"bufio"
	"strings"
)

// parsePasswd splits "name:x:uid:gid:gecos:home:shell". A line qualifies only
// when the password column is "x" and the uid and gid columns are equal;
// users whose primary group id differs from their uid are not resolved.
func parsePasswd(line string) (name, uid string, ok bool) {
	parts := strings.Split(strings.TrimSpace(line), ":")
	if len(parts) < 4 || parts[0] == "" {
		return "", "", false
	}
	if parts[1] != "x" || parts[2] == "" || parts[2] != parts[3] {
		return "", "", false
	}
	return parts[0], parts[2], true
}

// LookupUser resolves a numeric uid against the passwd file. It returns
// false when the file is unreadable or no line matches.
func (s *Source) LookupUser(uid string) (string, bool) {
	if uid == "" {
		return "", false
	}
	f, err := s.fs.Open(s.passwd)
	if err != nil {
		return "", false
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name, id, ok := parsePasswd(sc.Text())
		if ok && id == uid {
			return name, true
		}
	}
	return "", false
}

// Users returns every resolvable uid -> name pair, first match winning.
func (s *Source) Users() map[string]string {
	users := make(map[string]string)
	f, err := s.fs.Open(s.passwd)
	if err != nil {
		return users
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name, id, ok := parsePasswd(sc.Text())
		if !ok {
			continue
		}
		if _, dup := users[id]; !dup {
			users[id] = name
		}
	}
	return users
}
