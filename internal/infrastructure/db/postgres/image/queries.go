package image

const (
	SelectImageByID = `
		SELECT i.id, i.uuid, i.name, i.title, i.description, i.content_type, i.storage_key,
		       i.contributor_id, u.uuid, i.gallery_id, g.uuid, i.created_at, i.updated_at
		FROM images i
		JOIN users u ON u.id = i.contributor_id
		LEFT JOIN galleries g ON g.id = i.gallery_id
		WHERE i.uuid = $1
	`
	SelectImageByIDAndContributor = `
		SELECT i.id, i.uuid, i.name, i.title, i.description, i.content_type, i.storage_key,
		       i.contributor_id, u.uuid, i.gallery_id, g.uuid, i.created_at, i.updated_at
		FROM images i
		JOIN users u ON u.id = i.contributor_id
		LEFT JOIN galleries g ON g.id = i.gallery_id
		WHERE i.uuid = $1 AND i.contributor_id = $2
	`
	InsertImage = `
		WITH inserted AS (
			INSERT INTO images (name, title, description, content_type, storage_key, contributor_id, gallery_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, uuid, name, title, description, content_type, storage_key, contributor_id, gallery_id, created_at, updated_at
		)
		SELECT i.id, i.uuid, i.name, i.title, i.description, i.content_type, i.storage_key,
		       i.contributor_id, u.uuid, i.gallery_id, g.uuid, i.created_at, i.updated_at
		FROM inserted i
		JOIN users u ON u.id = i.contributor_id
		LEFT JOIN galleries g ON g.id = i.gallery_id
	`
	UpdateImageInfoByUUID = `
		WITH updated AS (
			UPDATE images
			SET title = $1,
			    description = $2,
			    updated_at = now()
			WHERE uuid = $3
			RETURNING id, uuid, name, title, description, content_type, storage_key, contributor_id, gallery_id, created_at, updated_at
		)
		SELECT i.id, i.uuid, i.name, i.title, i.description, i.content_type, i.storage_key,
		       i.contributor_id, u.uuid, i.gallery_id, g.uuid, i.created_at, i.updated_at
		FROM updated i
		JOIN users u ON u.id = i.contributor_id
		LEFT JOIN galleries g ON g.id = i.gallery_id
	`
	DeleteImageByUUID = `
		WITH deleted AS (
			DELETE FROM images
			WHERE uuid = $1
			RETURNING id, uuid, name, title, description, content_type, storage_key, contributor_id, gallery_id, created_at, updated_at
		)
		SELECT i.id, i.uuid, i.name, i.title, i.description, i.content_type, i.storage_key,
		       i.contributor_id, u.uuid, i.gallery_id, g.uuid, i.created_at, i.updated_at
		FROM deleted i
		JOIN users u ON u.id = i.contributor_id
		LEFT JOIN galleries g ON g.id = i.gallery_id
	`
	SearchImages = `
		SELECT i.id, i.uuid, i.name, i.title, i.description, i.content_type, i.storage_key,
		       i.contributor_id, u.uuid, i.gallery_id, g.uuid, i.created_at, i.updated_at
		FROM images i
		JOIN users u ON u.id = i.contributor_id
		LEFT JOIN galleries g ON g.id = i.gallery_id
		WHERE ($1::bigint IS NULL OR i.contributor_id = $1)
		  AND ($2::text = ''
		       OR i.name ILIKE '%' || $2 || '%'
		       OR i.title ILIKE '%' || $2 || '%'
		       OR i.description ILIKE '%' || $2 || '%')
		ORDER BY COALESCE(i.title, i.name) ASC, i.created_at DESC
		LIMIT 50 OFFSET ( ($3 - 1) * 50 )
	`
	SelectGalleryImages = `
		SELECT i.id, i.uuid, i.name, i.title, i.description, i.content_type, i.storage_key,
		       i.contributor_id, u.uuid, i.gallery_id, g.uuid, i.created_at, i.updated_at
		FROM images i
		JOIN users u ON u.id = i.contributor_id
		LEFT JOIN galleries g ON g.id = i.gallery_id
		WHERE i.gallery_id = $1
		ORDER BY i.created_at DESC, i.id DESC
		LIMIT 50 OFFSET ( ($2 - 1) * 50 )
	`
	SelectContributorImages = `
		SELECT i.id, i.uuid, i.name, i.title, i.description, i.content_type, i.storage_key,
		       i.contributor_id, u.uuid, i.gallery_id, g.uuid, i.created_at, i.updated_at
		FROM images i
		JOIN users u ON u.id = i.contributor_id
		LEFT JOIN galleries g ON g.id = i.gallery_id
		WHERE i.contributor_id = $1
		ORDER BY i.created_at DESC, i.id DESC
		LIMIT 50 OFFSET ( ($2 - 1) * 50 )
	`
)
