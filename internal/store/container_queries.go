package store

const (
	insertReplicaIfMissing = `INSERT INTO replica (id, layer_id, source_id, status)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING;`

	selectReplicaLayerID = `SELECT layer_id FROM replica WHERE id = 1;`

	selectReplica = `SELECT layer_id, source_id, geometry_type, fingerprint,
			local_version, remote_version, epoch, versioning_enabled,
			status, status_reason, last_synced_at,
			(SELECT COUNT(*) FROM pending_deltas)
		FROM replica
		WHERE id = 1;`

	selectSchemaColumns = `SELECT name, kind FROM schema_columns ORDER BY position;`

	insertSchemaColumn = `INSERT INTO schema_columns (position, name, kind) VALUES (?, ?, ?);`

	selectFeature = `SELECT fid, remote_id, geometry, attributes, revision, deleted, base
		FROM features
		WHERE fid = ?;`

	upsertFeature = `INSERT INTO features (fid, remote_id, geometry, attributes, revision, deleted, base)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (fid) DO UPDATE SET
			remote_id  = excluded.remote_id,
			geometry   = excluded.geometry,
			attributes = excluded.attributes,
			revision   = excluded.revision,
			deleted    = excluded.deleted,
			base       = excluded.base;`

	deleteFeature = `DELETE FROM features WHERE fid = ?;`

	selectPendingDeltas = `SELECT seq, op, fid, payload, origin FROM pending_deltas ORDER BY seq;`

	insertPendingDelta = `INSERT INTO pending_deltas (op, fid, payload, origin) VALUES (?, ?, ?, ?);`

	selectLatestPendingSeq = `SELECT COALESCE(MAX(seq), 0) FROM pending_deltas WHERE fid = ?;`

	bumpLocalVersion = `UPDATE replica SET local_version = local_version + ? WHERE id = 1;`

	advanceRemoteVersion = `UPDATE replica
		SET remote_version = ?, local_version = local_version + ?
		WHERE id = 1;`

	loadSnapshotMeta = `UPDATE replica
		SET geometry_type = ?, fingerprint = ?, remote_version = ?,
			local_version = MAX(local_version + 1, ?),
			epoch = ?, versioning_enabled = ?
		WHERE id = 1;`

	commitSession = `UPDATE replica
		SET remote_version = MAX(remote_version, ?), epoch = ?, versioning_enabled = ?,
			status = ?, status_reason = '', last_synced_at = ?
		WHERE id = 1;`

	updateStatus = `UPDATE replica SET status = ?, status_reason = ? WHERE id = 1;`

	recoverStatus = `UPDATE replica SET status = ?, status_reason = ? WHERE id = 1 AND status = ?;`

	purgeFeatures      = `DELETE FROM features;`
	purgePendingDeltas = `DELETE FROM pending_deltas;`
	purgeSchemaColumns = `DELETE FROM schema_columns;`
	purgeReplicaSchema = `UPDATE replica SET geometry_type = '', fingerprint = '', status = ?, status_reason = '' WHERE id = 1;`

	checkSQLiteReadable = `SELECT COUNT(*) FROM sqlite_master;`
)
