package db

const sessionGetByFingerprintQ = `
SELECT
	s.id,
	s.user_id,
	s.fingerprint,
	s.device_name,
	s.device_type,
	s.ip,
	s.user_agent,
	s.last_activity,
	s.created_at
FROM sessions s
WHERE s.user_id = $1 AND s.fingerprint = $2
`

const sessionTouchQ = `
UPDATE sessions
SET last_activity = NOW(), ip = $1, user_agent = $2
WHERE id = $3
`

const sessionCountQ = `
SELECT COUNT(*)
FROM sessions s
WHERE s.user_id = $1
`

const sessionCreateQ = `
INSERT INTO sessions (user_id, fingerprint, device_name, device_type, ip, user_agent)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`

const sessionListQ = `
SELECT
	s.id,
	s.user_id,
	s.fingerprint,
	s.device_name,
	s.device_type,
	s.ip,
	s.user_agent,
	s.last_activity,
	s.created_at
FROM sessions s
WHERE s.user_id = $1
ORDER BY s.last_activity DESC
`

const sessionListAllQ = `
SELECT
	s.id,
	s.user_id,
	s.fingerprint,
	s.device_name,
	s.device_type,
	s.ip,
	s.user_agent,
	s.last_activity,
	s.created_at
FROM sessions s
ORDER BY s.last_activity DESC
LIMIT $1
`

const sessionCountAllQ = `
SELECT COUNT(*)
FROM sessions
`

const sessionDeleteQ = `
DELETE FROM sessions
WHERE user_id = $1 AND fingerprint = $2
`

const sessionDeleteAllQ = `
DELETE FROM sessions
WHERE user_id = $1
`

const sessionDeleteIdleQ = `
DELETE FROM sessions
WHERE last_activity < $1
`
