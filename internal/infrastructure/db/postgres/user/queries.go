package user

const (
	SelectUsers = `
		SELECT id, uuid, oauth_key, display_name, connected_at, created_at, updated_at
		FROM users
		ORDER BY display_name ASC, id ASC
		LIMIT 50 OFFSET ( ($1 - 1) * 50 )
	`
	SelectUserByID = `
		SELECT id, uuid, oauth_key, display_name, connected_at, created_at, updated_at
		FROM users
		WHERE uuid = $1
	`
	SelectUserByOauthKey = `
		SELECT id, uuid, oauth_key, display_name, connected_at, created_at, updated_at
		FROM users
		WHERE oauth_key = $1
	`
	InsertUser = `
		INSERT INTO users (oauth_key, display_name, connected_at)
		VALUES ($1, $2, now())
		RETURNING
		  id, uuid, oauth_key, display_name, connected_at, created_at, updated_at
	`
	UpdateDisplayNameByUUID = `
		UPDATE users
		SET display_name = $1,
		    updated_at = now()
		WHERE uuid = $2
		RETURNING
		  id, uuid, oauth_key, display_name, connected_at, created_at, updated_at
	`
	TouchConnectedByUUID = `
		UPDATE users
		SET connected_at = now(),
		    updated_at = now()
		WHERE uuid = $1
		RETURNING
		  id, uuid, oauth_key, display_name, connected_at, created_at, updated_at
	`
	SelectIdByUUID = `SELECT id FROM users WHERE uuid = $1::uuid`
)
