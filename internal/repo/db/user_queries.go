package db

const userGetByIDQ = `
SELECT
	u.id,
	u.username,
	u.max_connections,
	u.is_active,
	u.role,
	u.expires_at,
	u.created_at,
	u.updated_at,
	(SELECT COUNT(*) FROM sessions s WHERE s.user_id = u.id) AS active_devices
FROM users u
WHERE u.id = $1
`

const userGetByUsernameQ = `
SELECT
	u.id,
	u.username,
	u.password_hash,
	u.max_connections,
	u.is_active,
	u.role,
	u.expires_at,
	u.created_at,
	u.updated_at
FROM users u
WHERE u.username = $1
`

const userCreateQ = `
INSERT INTO users (username, password_hash, max_connections, is_active, role, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`

const userDeleteQ = `
DELETE FROM users
WHERE id = $1
`
