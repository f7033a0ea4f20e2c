// Package cluster — адаптер вычислительного кластера.
//
// Даёт оркестратору единый примитив "отправить N единиц работы,
// собрать N результатов в порядке отправки" независимо от того,
// подключён ли внешний кластер (Attach) или создан локальный
// пул воркеров (NewLocal).
//
// Жизненный цикл кластера принадлежит тому, кто его создал:
// Client никогда не закрывает кластер сам.
package cluster
