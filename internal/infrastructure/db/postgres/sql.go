package postgres

const insertScanSQL = `
INSERT INTO scans (id, user_id, day_id, product_barcode, occurred_at, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`

const insertSymptomSQL = `
INSERT INTO symptoms (id, user_id, scan_id, day_id, product_barcode, occurred_at, severities, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`

const getScanSQL = `
SELECT id, user_id, product_barcode, occurred_at, created_at
FROM scans WHERE id = $1
`

const scansInRangeSQL = `
SELECT id, user_id, product_barcode, occurred_at, created_at
FROM scans
WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at < $3
ORDER BY occurred_at ASC, id ASC
`

const symptomsInRangeSQL = `
SELECT id, user_id, scan_id, product_barcode, occurred_at, severities, created_at
FROM symptoms
WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at < $3
ORDER BY occurred_at ASC, id ASC
`

const scanTimesSQL = `
SELECT occurred_at FROM scans WHERE user_id = $1
`

const symptomTimesSQL = `
SELECT occurred_at FROM symptoms WHERE user_id = $1
`

// EnsureDay is the idempotent day-bucket materialization: the no-op update
// lets RETURNING yield the existing row's id on conflict.
const ensureDaySQL = `
INSERT INTO days (id, user_id, day)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, day) DO UPDATE SET day = EXCLUDED.day
RETURNING id
`

const getProductSQL = `
SELECT id, barcode, name, ingredients, picture_url, created_at
FROM products WHERE barcode = $1
`

const latestStatusSQL = `
SELECT id, product_barcode, safe, explanation, recorded_at
FROM statuses
WHERE product_barcode = $1
ORDER BY recorded_at DESC, id DESC
LIMIT 1
`

const getPostSQL = `
SELECT id, user_id, post_text, media_urls, likes, created_at, updated_at
FROM posts WHERE id = $1
`

const getUserSQL = `
SELECT id, name, email, bio, picture_url, created_at
FROM users WHERE id = $1
`
