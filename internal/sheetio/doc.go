// Package sheetio moves tables between the file system and grid.Table.
//
// It reads the first meaningful worksheet of an .xlsx workbook or a delimited
// .csv file (delimiter sniffed, BOM stripped, Windows-1252 accepted), lists
// entity files in a directory, and writes the result workbook with a
// summary sheet, one sheet per entity, and a legend.
package sheetio
