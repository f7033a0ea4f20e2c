// Package ops содержит реестр типов операций и их стандартные
// реализации (write_file, delay, http).
//
// Операция описывается в batch-файле парой (имя, параметры);
// реестр по имени строит pipeline.StepFunc с уже связанными
// параметрами. Сами операции для оркестратора непрозрачны —
// он видит только контракт Task.
package ops
