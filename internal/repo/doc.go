// Package repo — хранение результатов batch'ей в PostgreSQL.
//
// Хранилище опционально: оркестратор работает и без БД,
// репозиторий подключается из CLI флагом --db-url.
package repo
