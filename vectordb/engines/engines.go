package engines

import (
	"cenone/vectordb/engines/chromem"
	"cenone/vectordb/engines/memory"
	"cenone/vectordb/engines/milvus"
)

var (
	FromChromem = chromem.New
	FromMemory  = memory.New
	FromMilvus  = milvus.New
)
