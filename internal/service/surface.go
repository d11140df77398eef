package service

import (
	"therapy_dashboard/internal/chart"
)

// Surface 视图的输出目标
type Surface interface {
	Heading(text string)
	Markdown(text string)
	Chart(index int, spec chart.Spec)
	Table(columns []string, rows [][]string)
	List(items []string)
	Info(message string)
	Divider()
}

type BlockKind string

const (
	BlockHeading  BlockKind = "heading"
	BlockMarkdown BlockKind = "markdown"
	BlockChart    BlockKind = "chart"
	BlockTable    BlockKind = "table"
	BlockList     BlockKind = "list"
	BlockInfo     BlockKind = "info"
	BlockDivider  BlockKind = "divider"
)

// Block 页面中的一个元素
type Block struct {
	Kind       BlockKind   `json:"kind"`
	Text       string      `json:"text,omitempty"`
	ChartIndex int         `json:"chartIndex,omitempty"`
	Chart      *chart.Spec `json:"chart,omitempty"`
	Columns    []string    `json:"columns,omitempty"`
	Rows       [][]string  `json:"rows,omitempty"`
	Items      []string    `json:"items,omitempty"`
}

// Page 按顺序记录输出的 Surface 实现，供模板与 JSON 接口使用
type Page struct {
	ViewID string  `json:"viewId"`
	Blocks []Block `json:"blocks"`
}

func NewPage(viewID string) *Page {
	return &Page{ViewID: viewID}
}

func (p *Page) Heading(text string) {
	p.Blocks = append(p.Blocks, Block{Kind: BlockHeading, Text: text})
}

func (p *Page) Markdown(text string) {
	p.Blocks = append(p.Blocks, Block{Kind: BlockMarkdown, Text: text})
}

func (p *Page) Chart(index int, spec chart.Spec) {
	p.Blocks = append(p.Blocks, Block{Kind: BlockChart, ChartIndex: index, Chart: &spec})
}

func (p *Page) Table(columns []string, rows [][]string) {
	p.Blocks = append(p.Blocks, Block{Kind: BlockTable, Columns: columns, Rows: rows})
}

func (p *Page) List(items []string) {
	p.Blocks = append(p.Blocks, Block{Kind: BlockList, Items: items})
}

func (p *Page) Info(message string) {
	p.Blocks = append(p.Blocks, Block{Kind: BlockInfo, Text: message})
}

func (p *Page) Divider() {
	p.Blocks = append(p.Blocks, Block{Kind: BlockDivider})
}

// Find 返回指定类型的全部块
func (p *Page) Find(kind BlockKind) []Block {
	var out []Block
	for _, b := range p.Blocks {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}
