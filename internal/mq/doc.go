// Package mq — публикация событий о результатах batch'ей в RabbitMQ.
//
// Оркестратор сам очереди не потребляет: события предназначены
// внешним системам (мониторинг, downstream-обработка). Публикация
// опциональна и подключается из CLI флагом --mq-url.
package mq
