package gallery

const (
	SelectGalleries = `
		SELECT g.id, g.uuid, g.title, g.description, g.creator_id, u.uuid, g.created_at, g.updated_at
		FROM galleries g
		JOIN users u ON u.id = g.creator_id
		ORDER BY g.created_at DESC, g.id DESC
		LIMIT 50 OFFSET ( ($1 - 1) * 50 )
	`
	SelectGalleryByID = `
		SELECT g.id, g.uuid, g.title, g.description, g.creator_id, u.uuid, g.created_at, g.updated_at
		FROM galleries g
		JOIN users u ON u.id = g.creator_id
		WHERE g.uuid = $1
	`
	SelectGalleryByIDAndCreator = `
		SELECT g.id, g.uuid, g.title, g.description, g.creator_id, u.uuid, g.created_at, g.updated_at
		FROM galleries g
		JOIN users u ON u.id = g.creator_id
		WHERE g.uuid = $1 AND g.creator_id = $2
	`
	InsertGallery = `
		WITH inserted AS (
			INSERT INTO galleries (title, description, creator_id)
			VALUES ($1, $2, $3)
			RETURNING id, uuid, title, description, creator_id, created_at, updated_at
		)
		SELECT i.id, i.uuid, i.title, i.description, i.creator_id, u.uuid, i.created_at, i.updated_at
		FROM inserted i
		JOIN users u ON u.id = i.creator_id
	`
	SelectIdByUUID = `SELECT id FROM galleries WHERE uuid = $1::uuid`
)
